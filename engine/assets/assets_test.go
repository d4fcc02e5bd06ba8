package assets_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/oxide/engine/assets"
	"github.com/spaghettifunk/oxide/engine/assets/loaders"
	"github.com/spaghettifunk/oxide/engine/core"
)

func init() {
	core.DisableLogging()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"shaders/builtin.spv": {Data: []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}},
		"textures/ship.png":   {Data: pngBytes(t, 2, 3)},
		"palettes/menu.toml":  {Data: []byte("name = \"menu\"\n[colors]\nbackground = \"#102030\"\n")},
		"textures/broken.png": {Data: []byte("not a png")},
	}
}

// counter is a user-defined asset type living outside the loaders package.
type counter struct {
	size int
}

func (c *counter) Kind() string { return "counter" }

func (c *counter) Load(_ string, data []byte) error {
	c.size = len(data)
	return nil
}

func TestLoadReturnsTypedHandle(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))

	img, err := assets.Load[loaders.Image](reg, "textures/ship.png")
	require.NoError(t, err)

	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 1, reg.Len())
}

func TestGetReturnsSameHandle(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))

	bin, err := assets.Load[loaders.Binary](reg, "shaders/builtin.spv")
	require.NoError(t, err)

	got, ok := assets.Get[loaders.Binary](reg, 0)
	require.True(t, ok)
	assert.Same(t, bin, got)
	assert.Equal(t, []uint32{0x07230203, 0x00010000}, got.Words())
}

func TestGetChecksTypeAndIndex(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))

	_, err := assets.Load[loaders.Binary](reg, "shaders/builtin.spv")
	require.NoError(t, err)
	_, err = assets.Load[loaders.Palette](reg, "palettes/menu.toml")
	require.NoError(t, err)

	for i := -1; i <= reg.Len(); i++ {
		bin, binOK := assets.Get[loaders.Binary](reg, i)
		pal, palOK := assets.Get[loaders.Palette](reg, i)
		img, imgOK := assets.Get[loaders.Image](reg, i)

		assert.Equal(t, i == 0, binOK, "binary at %d", i)
		assert.Equal(t, i == 1, palOK, "palette at %d", i)
		assert.False(t, imgOK, "image at %d", i)

		if !binOK {
			assert.Nil(t, bin)
		}
		if !palOK {
			assert.Nil(t, pal)
		}
		assert.Nil(t, img)
	}
}

func TestLoadMissingFileLeavesRegistryUnchanged(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))
	_, err := assets.Load[loaders.Binary](reg, "shaders/builtin.spv")
	require.NoError(t, err)

	img, err := assets.Load[loaders.Image](reg, "textures/missing.png")

	assert.Nil(t, img)
	var loadErr *core.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "textures/missing.png", loadErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, 1, reg.Len())
}

func TestLoadMalformedAsset(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))

	_, err := assets.Load[loaders.Image](reg, "textures/broken.png")

	var loadErr *core.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, core.ErrMalformedAsset)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadFromOSFileSystem(t *testing.T) {
	reg := assets.NewRegistry()

	_, err := assets.Load[loaders.Binary](reg, t.TempDir()+"/nothing-here.bin")

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 0, reg.Len())
}

func TestUserDefinedAssetType(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))

	c, err := assets.Load[counter](reg, "palettes/menu.toml")
	require.NoError(t, err)
	assert.Positive(t, c.size)

	_, ok := assets.Get[loaders.Palette](reg, 0)
	assert.False(t, ok)
	got, ok := assets.Get[counter](reg, 0)
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestEntries(t *testing.T) {
	reg := assets.NewRegistry(assets.WithFileSystem(testFS(t)))
	before := time.Now()

	_, err := assets.Load[loaders.Binary](reg, "shaders/builtin.spv")
	require.NoError(t, err)
	_, err = assets.Load[loaders.Image](reg, "textures/ship.png")
	require.NoError(t, err)

	entries := reg.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "shaders/builtin.spv", entries[0].Path)
	assert.Equal(t, "binary", entries[0].Kind)
	assert.Equal(t, "image", entries[1].Kind)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.False(t, entries[1].LoadedAt.Before(before))
}

func TestCloseKeepsHandlesIntact(t *testing.T) {
	fsys := fstest.MapFS{"a.bin": {Data: []byte{1, 2, 3, 4}}}
	reg := assets.NewRegistry(assets.WithFileSystem(fsys))

	bin, err := assets.Load[loaders.Binary](reg, "a.bin")
	require.NoError(t, err)
	c, err := assets.Load[counter](reg, "a.bin")
	require.NoError(t, err)

	reg.Close()

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, []byte{1, 2, 3, 4}, bin.Data)
	assert.Equal(t, 4, c.size)

	_, ok := assets.Get[loaders.Binary](reg, 0)
	assert.False(t, ok)
}
