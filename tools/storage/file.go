package storage

import (
	"context"
	"fmt"
	"os"
)

// FileState reads a document from the local filesystem on every Load.
type FileState struct {
	FilePath string
}

func NewFileState(filePath string) *FileState {
	return &FileState{FilePath: filePath}
}

func (f *FileState) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.FilePath)
}

func (f *FileState) String() string { return fmt.Sprintf("file://%s", f.FilePath) }
