package filesystem

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

// charsetSample bounds how much of an undecodable file is fed to the
// charset detector.
const charsetSample = 64 * 1024

// ReadFile returns the full contents of a UTF-8 text file.
func (o *Operations) ReadFile(ctx context.Context, path string) (string, error) {
	const op = "read_file"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return "", err
	}

	info, err := stat(op, path, resolved)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fserr.New(op, path, fserr.KindNotAFile, "path is a directory, use list_directory")
	}
	if !info.Mode().IsRegular() {
		return "", fserr.New(op, path, fserr.KindNotAFile, "not a regular file")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fserr.FromOS(op, path, err)
	}

	if !utf8.Valid(data) {
		return "", fserr.New(op, path, fserr.KindDecodeError, describeEncoding(data))
	}

	o.logger.Debug("file read", zap.String("path", path), zap.Int("bytes", len(data)))
	return string(data), nil
}

// WriteFile replaces the contents of a file, creating it if needed.
// The parent directory must already exist.
func (o *Operations) WriteFile(ctx context.Context, path, content string) (string, error) {
	const op = "write_file"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", fserr.New(op, path, fserr.KindNotAFile, "path is a directory")
		}
		if !info.Mode().IsRegular() {
			return "", fserr.New(op, path, fserr.KindNotAFile, "not a regular file")
		}
	case !isMissing(err):
		return "", fserr.FromOS(op, path, err)
	}

	if err := checkParent(op, path, resolved); err != nil {
		return "", err
	}

	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return "", fserr.FromOS(op, path, err)
	}

	chars := utf8.RuneCountInString(content)
	o.logger.Debug("file written", zap.String("path", path), zap.Int("chars", chars))
	return fmt.Sprintf("Successfully wrote %d characters to '%s'", chars, path), nil
}

// DeleteFile removes a single file.
func (o *Operations) DeleteFile(ctx context.Context, path string) (string, error) {
	const op = "delete_file"

	resolved, err := o.resolve(ctx, op, path)
	if err != nil {
		return "", err
	}

	info, err := stat(op, path, resolved)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fserr.New(op, path, fserr.KindNotAFile, "path is a directory, use delete_directory instead")
	}

	if err := os.Remove(resolved); err != nil {
		if isMissing(err) {
			return "", fserr.New(op, path, fserr.KindNotFound, "")
		}
		return "", fserr.FromOS(op, path, err)
	}

	o.logger.Debug("file deleted", zap.String("path", path))
	return fmt.Sprintf("Successfully deleted file '%s'", path), nil
}

// describeEncoding names the most likely charset of undecodable bytes.
func describeEncoding(data []byte) string {
	if len(data) > charsetSample {
		data = data[:charsetSample]
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil || best.Charset == "" {
		return "content appears to be binary"
	}
	return fmt.Sprintf("content looks like %s", best.Charset)
}
