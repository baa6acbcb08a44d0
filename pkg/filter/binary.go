package filter

import (
	"bytes"
	"path"
	"strings"
)

// sniffLen is how many leading bytes are inspected for binary content.
const sniffLen = 512

// BinaryExtensions are skipped without reading the file.
var BinaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true, ".obj": true,
	".lib": true, ".class": true, ".jar": true, ".war": true, ".pyc": true, ".pyo": true, ".pdb": true,
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".bz2": true, ".xz": true, ".7z": true, ".rar": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".ico": true, ".webp": true, ".tiff": true,
	".mp3": true, ".wav": true, ".aac": true, ".flac": true, ".ogg": true,
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".wmv": true,
	".pdf": true, ".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".db": true, ".sqlite": true, ".bin": true, ".dat": true,
}

// isBinaryContent checks the first bytes for NUL bytes or a high ratio of
// non-printable characters. Empty content is text.
func isBinaryContent(content []byte) bool {
	buffer := content
	if len(buffer) > sniffLen {
		buffer = buffer[:sniffLen]
	}
	if len(buffer) == 0 {
		return false
	}

	if bytes.IndexByte(buffer, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

// isPrintable treats printable ASCII, common whitespace and any byte of a
// multi-byte UTF-8 sequence as text.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b == '\f' || b >= 0x80
}

// isCommonBinaryExtension checks the file name against BinaryExtensions.
func isCommonBinaryExtension(name string) bool {
	return BinaryExtensions[strings.ToLower(path.Ext(name))]
}
