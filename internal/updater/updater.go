package updater

import (
	"archive/tar"
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/highercomve/timegrid/internal/version"
)

const (
	githubAPIURL = "https://api.github.com/repos/%s/%s/releases/latest"

	// executableBase is the release asset binary name without extension.
	executableBase = "timegrid"
)

// GitHubRelease represents the structure of a GitHub release.
type GitHubRelease struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset represents a release asset.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// SelfUpdate checks GitHub for a newer release and swaps the running
// executable when one exists. Development builds skip the check.
func SelfUpdate(owner, repo string) error {
	current := version.Version
	if current == "dev" {
		return nil
	}

	latestTag, downloadURL, err := CheckForUpdates(owner, repo)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if latestTag == "" || downloadURL == "" {
		return nil
	}
	if compareVersions(current, latestTag) >= 0 {
		return nil
	}

	executablePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := downloadAndReplace(downloadURL, executablePath); err != nil {
		return fmt.Errorf("failed to download and replace: %w", err)
	}
	fmt.Printf("Updated to %s. Restart the application to load it.\n", latestTag)
	return nil
}

// CheckForUpdates fetches the latest release and returns its tag plus the
// download URL of the asset matching this OS/arch. Linux releases ship as
// tar.xz, Windows as zip.
func CheckForUpdates(owner, repo string) (string, string, error) {
	url := fmt.Sprintf(githubAPIURL, owner, repo)
	resp, err := http.Get(url)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch release info from GitHub: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, resp.Status)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("failed to decode GitHub release JSON: %w", err)
	}

	assetPlatform := fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH)
	var suffix string
	switch runtime.GOOS {
	case "windows":
		suffix = assetPlatform + ".zip"
	case "linux":
		suffix = assetPlatform + ".tar.xz"
	default:
		return "", "", fmt.Errorf("unsupported operating system for self-update: %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, suffix) && strings.Contains(asset.Name, executableBase) {
			return release.TagName, asset.BrowserDownloadURL, nil
		}
	}
	return "", "", fmt.Errorf("no suitable asset found for %s/%s", runtime.GOOS, runtime.GOARCH)
}

func downloadAndReplace(downloadURL, executablePath string) error {
	tmpDir, err := os.MkdirTemp("", "timegrid-update-")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archiveName := filepath.Base(downloadURL)
	tmpArchivePath := filepath.Join(tmpDir, archiveName)

	resp, err := http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download update archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download archive, HTTP status: %d (%s)", resp.StatusCode, resp.Status)
	}

	outFile, err := os.Create(tmpArchivePath)
	if err != nil {
		return fmt.Errorf("failed to create temporary archive file: %w", err)
	}
	if _, err := io.Copy(outFile, resp.Body); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to write download to temporary file: %w", err)
	}
	outFile.Close()

	var extracted string
	switch {
	case strings.HasSuffix(archiveName, ".tar.xz"):
		extracted, err = extractTarXz(tmpArchivePath, tmpDir, executablePath)
	case strings.HasSuffix(archiveName, ".zip"):
		extracted, err = extractZip(tmpArchivePath, tmpDir, executablePath)
	default:
		return fmt.Errorf("unsupported archive format: %s", archiveName)
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", archiveName, err)
	}
	if extracted == "" {
		return fmt.Errorf("failed to find extracted executable in archive")
	}

	return replaceExecutable(executablePath, extracted)
}

// extractTarXz extracts the binary from a .tar.xz archive.
func extractTarXz(archivePath, destDir, executablePath string) (string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return "", err
	}

	wantName := strings.TrimSuffix(filepath.Base(executablePath), ".exe")
	tarReader := tar.NewReader(xzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != wantName {
			continue
		}

		newPath := filepath.Join(destDir, wantName)
		newFile, err := os.OpenFile(newPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, header.FileInfo().Mode())
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(newFile, tarReader); err != nil {
			newFile.Close()
			return "", err
		}
		newFile.Close()
		return newPath, nil
	}
	return "", fmt.Errorf("executable %q not found in .tar.xz archive", wantName)
}

// extractZip extracts the binary from a .zip archive.
func extractZip(archivePath, destDir, executablePath string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	wantName := filepath.Base(executablePath)
	if runtime.GOOS == "windows" && !strings.HasSuffix(wantName, ".exe") {
		wantName += ".exe"
	}

	for _, f := range r.File {
		if filepath.Base(f.Name) != wantName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}

		newPath := filepath.Join(destDir, wantName)
		newFile, err := os.OpenFile(newPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.Mode())
		if err != nil {
			rc.Close()
			return "", err
		}
		_, err = io.Copy(newFile, rc)
		rc.Close()
		newFile.Close()
		if err != nil {
			return "", err
		}
		return newPath, nil
	}
	return "", fmt.Errorf("executable %q not found in .zip archive", wantName)
}

// replaceExecutable swaps the running binary for the freshly extracted
// one. The running executable is renamed aside first; on Windows the
// rename fails while the file is locked, and the stale .old file lingers
// until the process exits.
func replaceExecutable(oldExecutablePath, newExecutablePath string) error {
	backupPath := oldExecutablePath + ".old"
	if err := os.Rename(oldExecutablePath, backupPath); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("failed to rename current executable (%s); the application may still be running and locked, close it and retry: %w", oldExecutablePath, err)
		}
		return fmt.Errorf("failed to rename old executable to backup: %w", err)
	}

	if err := os.Rename(newExecutablePath, oldExecutablePath); err != nil {
		_ = os.Rename(backupPath, oldExecutablePath) // Best effort rollback
		return fmt.Errorf("failed to move new executable into place: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(oldExecutablePath, 0755); err != nil {
			return fmt.Errorf("failed to set execute permissions on new executable: %w", err)
		}
		_ = os.Remove(backupPath)
	}
	return nil
}

// compareVersions compares dotted version strings, returning -1, 0 or 1.
func compareVersions(versionA, versionB string) int {
	versionA = strings.TrimPrefix(versionA, "v")
	versionB = strings.TrimPrefix(versionB, "v")

	aParts := strings.Split(versionA, ".")
	bParts := strings.Split(versionB, ".")

	maxParts := len(aParts)
	if len(bParts) > maxParts {
		maxParts = len(bParts)
	}

	for i := 0; i < maxParts; i++ {
		aPart, bPart := 0, 0
		if i < len(aParts) {
			aPart, _ = strconv.Atoi(aParts[i])
		}
		if i < len(bParts) {
			bPart, _ = strconv.Atoi(bParts[i])
		}
		if aPart < bPart {
			return -1
		}
		if aPart > bPart {
			return 1
		}
	}
	return 0
}
