package selector

import (
	"fmt"
	"os"
	"regexp"

	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
)

// HyperOptLossBase is the base class custom loss functions must extend
const HyperOptLossBase = "IHyperOptLoss"

var ErrLossClassNotFound = lerrors.NewFatalError("selector", "extract_loss", "could not find a class inheriting from "+HyperOptLossBase+" in the selected file")

// ExtractClass returns the first class identifier declared as extending base
func ExtractClass(content, base string) (string, bool) {
	re := regexp.MustCompile(`class\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(` + regexp.QuoteMeta(base) + `\):`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LossClassFromFile reads path and extracts the custom hyperopt loss class name
func LossClassFromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", lerrors.Fatal(err, "selector", "extract_loss", "failed to read "+path)
	}
	name, ok := ExtractClass(string(content), HyperOptLossBase)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLossClassNotFound, path)
	}
	return name, nil
}
