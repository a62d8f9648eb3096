package rebuild

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyAssets copies every file under source into dest, preserving relative
// paths. A missing source directory means the folder simply has no assets.
// Per-file failures are collected, not fatal.
func copyAssets(source, dest string) (int, []error) {
	if _, err := os.Stat(source); err != nil {
		return 0, nil
	}

	copied := 0
	var errs []error

	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dest, rel)); err != nil {
			errs = append(errs, fmt.Errorf("copying asset %s: %w", rel, err))
			return nil
		}
		copied++
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("walking assets %s: %w", source, err))
	}

	return copied, errs
}

func copyFile(source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
