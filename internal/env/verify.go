package env

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// KeyringEnvVar names an armored PGP keyring used to verify the
// release checksum file's detached signature when set.
const KeyringEnvVar = "BUNENV_RELEASE_KEYRING"

// VerifyChecksum checks archivePath against a SHASUMS256.txt document.
// It reports verified=false without error when the archive's file name
// is not listed; a listed-but-mismatching hash is an ArchiveError.
func VerifyChecksum(archivePath string, checksums []byte, fileName string) (bool, error) {
	expected, ok := findChecksum(checksums, fileName)
	if !ok {
		return false, nil
	}

	actual, err := hashFile(archivePath)
	if err != nil {
		return false, err
	}

	if !strings.EqualFold(expected, actual) {
		return false, &ArchiveError{
			Path: archivePath,
			Err:  fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual),
		}
	}
	return true, nil
}

// VerifySignature validates the checksum file's detached armored PGP
// signature against the keyring at keyringPath.
func VerifySignature(checksums, signature []byte, keyringPath string) error {
	keyringFile, err := os.Open(keyringPath)
	if err != nil {
		return fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		return fmt.Errorf("read keyring: %w", err)
	}

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(checksums), bytes.NewReader(signature), nil)
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// findChecksum scans SHASUMS256.txt ("<hex>  <filename>" lines) for the
// given file name.
func findChecksum(checksums []byte, fileName string) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(checksums))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		if strings.TrimPrefix(fields[1], "*") == fileName {
			return fields[0], true
		}
	}
	return "", false
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash archive: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
