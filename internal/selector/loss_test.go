package selector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
)

const customLoss = `
from freqtrade.optimize.hyperopt import IHyperOptLoss

class Helper:
    pass

class WinRatioAndProfitRatioLoss(IHyperOptLoss):
    @staticmethod
    def hyperopt_loss_function(results, trade_count, *args, **kwargs) -> float:
        return 0.0
`

func TestExtractClass(t *testing.T) {
	name, ok := ExtractClass(customLoss, HyperOptLossBase)
	require.True(t, ok)
	assert.Equal(t, "WinRatioAndProfitRatioLoss", name)

	_, ok = ExtractClass("class Other(BaseLoss):\n    pass\n", HyperOptLossBase)
	assert.False(t, ok)

	name, ok = ExtractClass("class   _Spaced  (IHyperOptLoss):", HyperOptLossBase)
	require.True(t, ok)
	assert.Equal(t, "_Spaced", name)
}

func TestLossClassFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.py")
	bad := filepath.Join(dir, "bad.py")
	require.NoError(t, os.WriteFile(good, []byte(customLoss), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("def nothing():\n    pass\n"), 0644))

	name, err := LossClassFromFile(good)
	require.NoError(t, err)
	assert.Equal(t, "WinRatioAndProfitRatioLoss", name)

	_, err = LossClassFromFile(bad)
	assert.True(t, errors.Is(err, ErrLossClassNotFound))
	assert.True(t, lerrors.IsFatal(err))

	_, err = LossClassFromFile(filepath.Join(dir, "missing.py"))
	assert.True(t, lerrors.IsFatal(err))
}
