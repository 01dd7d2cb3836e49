package detector_test

import (
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/arthur-debert/dupekeep/pkg/cache"
	"github.com/arthur-debert/dupekeep/pkg/detector"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource implements detector.Source for testing
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Output(ctx context.Context, root string) (string, error) {
	args := m.Called(root)
	return args.String(0), args.Error(1)
}

func TestCached_FillsAndReuses(t *testing.T) {
	src := new(MockSource)
	src.On("Output", "tree").Return("3 bytes each:\na\nb\n", nil).Once()
	store := cache.New(afero.NewMemMapFs(), "")
	cached := &detector.Cached{Source: src, Cache: store}

	first, err := cached.Output(context.Background(), "tree")
	require.NoError(t, err)
	second, err := cached.Output(context.Background(), "tree")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	src.AssertExpectations(t)

	raw, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, raw)
}

func TestCached_SourceErrorNotCached(t *testing.T) {
	src := new(MockSource)
	src.On("Output", "tree").Return("", errors.New(errors.ErrDetector, "boom")).Once()
	store := cache.New(afero.NewMemMapFs(), "")

	_, err := (&detector.Cached{Source: src, Cache: store}).Output(context.Background(), "tree")
	require.Error(t, err)

	_, ok, _ := store.Load()
	assert.False(t, ok)
}

func TestCommand_Output(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses echo")
	}
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	out, err := detector.NewCommand([]string{"echo", "-n"}).Output(context.Background(), "some/root")
	require.NoError(t, err)
	assert.Equal(t, "some/root", out)
}

func TestCommand_Missing(t *testing.T) {
	_, err := detector.NewCommand([]string{"dupekeep-no-such-detector"}).Output(context.Background(), ".")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDetector))
}
