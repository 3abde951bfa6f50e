package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"audio2num/internal/app/model"
)

// AudioExtensions are the source extensions picked up by directory scans.
var AudioExtensions = []string{".mav", ".wav", ".mp3", ".m4a", ".flac", ".ogg"}

// IsAudioFile reports whether name carries one of AudioExtensions.
func IsAudioFile(name string) bool {
	return lo.Contains(AudioExtensions, strings.ToLower(filepath.Ext(name)))
}

// GetAllAudioFiles lists audio files directly under inputDir, oldest first.
func GetAllAudioFiles(inputDir string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsAudioFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		fileInfos = append(fileInfos, model.FileInfo{
			Name:     entry.Name(),
			FullPath: filepath.Join(inputDir, entry.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.SliceStable(fileInfos, func(i, j int) bool {
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})

	return fileInfos, nil
}

// GetAbsolutePath resolves path and checks that it exists.
func GetAbsolutePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
