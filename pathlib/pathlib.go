package pathlib

import (
	"os"
	"path/filepath"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return err == nil
}

func IsFile(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.Mode().IsRegular()
}

func IsDir(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.IsDir()
}

func EnsureDirectory(directory string) (string, error) {
	fullpath, err := filepath.Abs(directory)
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(fullpath, 0o755)
	if err != nil {
		return "", err
	}
	return fullpath, nil
}

func TempDir() string {
	return os.TempDir()
}

func Create(filename string) (*os.File, error) {
	_, err := EnsureDirectory(filepath.Dir(filename))
	if err != nil {
		return nil, err
	}
	return os.Create(filename)
}

func WriteFile(filename string, blob []byte) error {
	_, err := EnsureDirectory(filepath.Dir(filename))
	if err != nil {
		return err
	}
	return os.WriteFile(filename, blob, 0o644)
}
