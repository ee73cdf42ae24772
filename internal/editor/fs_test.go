package editor

import "io/fs"

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}
