package artifacttool

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// makeZip builds an in-memory zip archive from a name→content map.
func makeZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for name, content := range files {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return buf.Bytes()
}

// makeTarGz builds an in-memory tar.gz archive from a name→content map.
func makeTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for name, content := range files {
		header := &tar.Header{
			Name:     name,
			Mode:     0755,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("write tar header %s: %v", name, err)
		}
		if _, err := tarWriter.Write([]byte(content)); err != nil {
			t.Fatalf("write tar entry %s: %v", name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	return buf.Bytes()
}

func TestExtractZip(t *testing.T) {
	archive := makeZip(t, map[string]string{
		"artifacttool":            "#!/bin/sh\necho tool",
		"lib/helper.dll":          "helper bytes",
		"docs/nested/readme.txt":  "read me",
		"THIRD-PARTY-NOTICES.txt": "notices",
	})

	destDir := filepath.Join(t.TempDir(), "out")

	extractor := NewExtractor()
	if err := extractor.Extract(archive, destDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]string{
		"artifacttool":            "#!/bin/sh\necho tool",
		"lib/helper.dll":          "helper bytes",
		"docs/nested/readme.txt":  "read me",
		"THIRD-PARTY-NOTICES.txt": "notices",
	}
	for name, want := range checks {
		content, err := os.ReadFile(filepath.Join(destDir, name))
		if err != nil {
			t.Fatalf("read extracted %s: %v", name, err)
		}
		if string(content) != want {
			t.Errorf("%s content mismatch:\ngot:  %q\nwant: %q", name, string(content), want)
		}
	}
}

func TestExtractTarGz(t *testing.T) {
	archive := makeTarGz(t, map[string]string{
		"bin/artifacttool": "binary bytes",
		"LICENSE":          "license text",
	})

	destDir := filepath.Join(t.TempDir(), "out")

	extractor := NewExtractor()
	if err := extractor.Extract(archive, destDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(destDir, "bin", "artifacttool"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(content) != "binary bytes" {
		t.Errorf("content mismatch: %q", string(content))
	}

	info, err := os.Stat(filepath.Join(destDir, "bin", "artifacttool"))
	if err != nil {
		t.Fatalf("stat extracted file: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Error("extracted binary lost its executable bit")
	}
}

func TestExtractTarGzZeroModeEntry(t *testing.T) {
	// Some tar writers emit entries with no permission bits at all; the
	// extracted file must still be readable
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	content := "plain file"
	header := &tar.Header{
		Name:     "notes.txt",
		Mode:     0,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		t.Fatalf("write tar header: %v", err)
	}
	if _, err := tarWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write tar entry: %v", err)
	}
	if err := tarWriter.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	destDir := filepath.Join(t.TempDir(), "out")

	extractor := NewExtractor()
	if err := extractor.Extract(buf.Bytes(), destDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := filepath.Join(destDir, "notes.txt")
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat extracted file: %v", err)
	}
	if info.Mode().Perm() == 0 {
		t.Error("extracted file has no permission bits")
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(got) != content {
		t.Errorf("content mismatch: %q", string(got))
	}
}

func TestExtractCreatesDestDir(t *testing.T) {
	archive := makeZip(t, map[string]string{"f.txt": "x"})

	// destDir does not exist yet, several levels deep
	destDir := filepath.Join(t.TempDir(), "a", "b", "c")

	extractor := NewExtractor()
	if err := extractor.Extract(archive, destDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(destDir, "f.txt")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	extractor := NewExtractor()

	t.Run("zip", func(t *testing.T) {
		archive := makeZip(t, map[string]string{"../evil.txt": "pwned"})

		destDir := filepath.Join(t.TempDir(), "out")
		if err := extractor.Extract(archive, destDir); err == nil {
			t.Fatal("expected error for path traversal")
		}

		if _, err := os.Stat(filepath.Join(filepath.Dir(destDir), "evil.txt")); err == nil {
			t.Error("traversal entry escaped the destination directory")
		}
	})

	t.Run("tar_gz", func(t *testing.T) {
		archive := makeTarGz(t, map[string]string{"../../evil.txt": "pwned"})

		destDir := filepath.Join(t.TempDir(), "out")
		if err := extractor.Extract(archive, destDir); err == nil {
			t.Fatal("expected error for path traversal")
		}
	})
}

func TestExtractUnrecognizedFormat(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name    string
		archive []byte
	}{
		{name: "garbage", archive: []byte("definitely not an archive")},
		{name: "empty", archive: nil},
		{name: "html_error_page", archive: []byte("<html><body>404</body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := extractor.Extract(tt.archive, t.TempDir()); err == nil {
				t.Error("expected error for unrecognized format")
			}
		})
	}
}

func TestExtractCorruptZip(t *testing.T) {
	// Valid magic, broken body
	archive := append([]byte("PK\x03\x04"), []byte("truncated nonsense")...)

	extractor := NewExtractor()
	if err := extractor.Extract(archive, t.TempDir()); err == nil {
		t.Error("expected error for corrupt zip")
	}
}

func TestExtractCorruptTarGz(t *testing.T) {
	// Valid gzip stream wrapping a broken tar
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write([]byte("this is not a tar stream")); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	extractor := NewExtractor()
	if err := extractor.Extract(buf.Bytes(), t.TempDir()); err == nil {
		t.Error("expected error for corrupt tar.gz")
	}
}
