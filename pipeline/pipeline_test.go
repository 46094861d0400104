/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/ingest"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// fakeOpen drives a single page of two words ("Hello" and "World") through
// whatever ingest.Interpreter the pipeline hands it, standing in for
// interp.Run against a real PDF.
func fakeOpen(path string, it ingest.Interpreter) error {
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 300, Lower: 200}
	it.StartPage(1, pageBox)
	it.UpdateFont(ingest.FontDescriptor{
		FontName:   "Test",
		Ascent:     0.75,
		Descent:    -0.25,
		FontMatrix: geom.NewMatrix(0.001, 0, 0, 0.001, 0, 0),
	})

	state := ingest.RenderState{FontName: "Test", FontSize: 12, Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	x := 10.0
	for _, word := range []string{"Hello", "World"} {
		for i, r := range word {
			if err := it.DrawChar(state, x, 100, 7, 0, uint32(r), 1, string(r), []rune{r}); err != nil {
				return err
			}
			x += 7
			_ = i
		}
		x += 10 // inter-word gap, wide enough to trigger word formation.
	}
	return it.EndPage()
}

func failingOpen(path string, it ingest.Interpreter) error {
	return errors.New("boom")
}

func TestRunProducesAReadableDocument(t *testing.T) {
	cfg := config.Default()
	doc, err := Run("fake.pdf", cfg, Options{Open: fakeOpen})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	assert.Len(t, page.Words, 2)
	assert.NotEmpty(t, page.Blocks)
	assert.Equal(t, model.RoleParagraph, page.Blocks[0].Role)
}

func TestRunPropagatesOpenError(t *testing.T) {
	cfg := config.Default()
	_, err := Run("fake.pdf", cfg, Options{Open: failingOpen})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunSkipsDisabledStages(t *testing.T) {
	cfg := config.Default()
	cfg.DisableSubSuperScriptDetection = true
	cfg.DisableWordsDehyphenation = true
	cfg.DisableSemanticRolesPrediction = true

	doc, err := Run("fake.pdf", cfg, Options{Open: fakeOpen})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	// RoleParagraph is also the zero value, so this only confirms the run
	// completes without invoking the (absent) classifier.
	assert.Equal(t, model.RoleParagraph, doc.Pages[0].Blocks[0].Role)
}
