package chroma_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/chroma"
	"github.com/stretchr/testify/assert"
)

func TestDetector_DetectFormat(t *testing.T) {
	t.Parallel()

	t.Run("detects plain text", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, redline.FormatPlaintext, detector.DetectFormat("contracts/nda.txt"))
	})

	t.Run("detects markdown", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, redline.FormatMarkdown, detector.DetectFormat("msa.md"))
	})

	t.Run("detects word documents by extension", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, redline.FormatDOCX, detector.DetectFormat("Offer Letter.DOCX"))
	})

	t.Run("reports other lexers by name", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Equal(t, "go", detector.DetectFormat("main.go"))
	})

	t.Run("returns empty string for unknown extensions", func(t *testing.T) {
		t.Parallel()

		detector := chroma.NewDetector()

		assert.Empty(t, detector.DetectFormat("scan.unknownext"))
	})
}
