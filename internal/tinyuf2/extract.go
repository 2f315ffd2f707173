package tinyuf2

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Archive members and the names they are installed under.
const (
	bootloaderMember = "bootloader.bin"
	bootloaderTarget = "bootloader-tinyuf2.bin"
	firmwareMember   = "tinyuf2.bin"
	csvSuffix        = ".csv"
	csvTargetSuffix  = "-tinyuf2.csv"
)

// targetName maps an archive member to its installed name, or "" when the
// member is not installed.
func targetName(member string) string {
	switch {
	case member == bootloaderMember:
		return bootloaderTarget
	case member == firmwareMember:
		return firmwareMember
	case strings.HasSuffix(member, csvSuffix):
		return strings.TrimSuffix(member, csvSuffix) + csvTargetSuffix
	default:
		return ""
	}
}

// extract installs the bootloader, firmware and partition tables from the
// archive at archivePath into dir and returns the installed paths. Nothing
// is written unless both binaries are present.
func extract(variant, asset, archivePath, dir string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open archive: %w", variant, err)
	}
	defer zr.Close()

	var members []*zip.File
	found := map[string]bool{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || targetName(f.Name) == "" {
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return nil, fmt.Errorf("%s: archive member %q escapes the variant directory", variant, f.Name)
		}
		found[f.Name] = true
		members = append(members, f)
	}
	for _, required := range []string{bootloaderMember, firmwareMember} {
		if !found[required] {
			return nil, &MissingMemberError{Variant: variant, Archive: asset, Member: required}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%s: failed to create variant directory: %w", variant, err)
	}

	written := make([]string, 0, len(members))
	for _, f := range members {
		dst := filepath.Join(dir, filepath.FromSlash(targetName(f.Name)))
		if err := extractFile(f, dst); err != nil {
			return written, fmt.Errorf("%s: failed to extract %s: %w", variant, f.Name, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
