package release

import (
	"fmt"
	"strings"

	"github.com/bunenv/bunenv/internal/platform"
)

// BinaryURL constructs the download URL for a Bun release archive:
//
//	{base}/bun-v{version}/bun-{os}-{arch}[-{variant}].zip
//
// mirror, when non-empty, replaces only the base; the path structure
// after it is fixed by Bun's release naming scheme.
func BinaryURL(version string, desc *platform.Descriptor, variant, mirror string) string {
	base := DefaultDownloadBase
	if mirror != "" {
		base = strings.TrimRight(mirror, "/")
	}
	return fmt.Sprintf("%s/bun-v%s/%s", base, version, ArchiveName(desc, variant))
}

// ArchiveName returns the artifact file name for a platform and variant,
// e.g. "bun-linux-x64.zip" or "bun-linux-x64-musl.zip".
func ArchiveName(desc *platform.Descriptor, variant string) string {
	name := fmt.Sprintf("bun-%s-%s", desc.OS, desc.Arch)
	if variant != "" {
		name += "-" + variant
	}
	return name + ".zip"
}

// ChecksumURL constructs the URL of the SHASUMS256.txt file published
// alongside each release.
func ChecksumURL(version, mirror string) string {
	base := DefaultDownloadBase
	if mirror != "" {
		base = strings.TrimRight(mirror, "/")
	}
	return fmt.Sprintf("%s/bun-v%s/SHASUMS256.txt", base, version)
}

// SignatureURL constructs the URL of the detached PGP signature for the
// checksum file.
func SignatureURL(version, mirror string) string {
	return ChecksumURL(version, mirror) + ".asc"
}
