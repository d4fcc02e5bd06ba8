package assets

import "os"

// Asset is anything the registry can hold. Kind names the asset type in
// logs and entry listings.
type Asset interface {
	Kind() string
}

// Loadable is an asset that builds itself from the bytes found at path.
// Returning an error rejects the content and nothing is stored.
type Loadable interface {
	Asset
	Load(path string, data []byte) error
}

// FileSystem is the byte source assets are read from. testing/fstest.MapFS
// satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
