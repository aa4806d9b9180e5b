package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/yungbote/voicediary-backend/internal/apperr"
	"github.com/yungbote/voicediary-backend/internal/logger"
	"github.com/yungbote/voicediary-backend/internal/types"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	comicPanels      = 4
	comicSize        = "1024x1024"
	dialogueFontSize = 40
	dialogueMaxLines = 2
	dialoguePadding  = 20
	boxHeightRatio   = 0.22
	maxCharsPerLine  = 18
)

var characterStyles = map[string]string{
	GenderMale:   "A calm Korean man in his late 20s with short black hair and glasses, wearing a hoodie.",
	GenderFemale: "A kind-looking Korean woman in her 20s with straight black hair, wearing casual indoor clothes.",
}

type ComicService interface {
	Generate(ctx context.Context, diaryText string, gender string) (*types.ComicResult, error)
}

type comicService struct {
	log    *logger.Logger
	openai OpenAIClient

	fontFace font.Face
}

// NewComicService builds the 4-panel comic generator. The dialogue overlay
// font is loaded from COMIC_FONT; without it the strip is returned with no
// text overlay.
func NewComicService(baseLog *logger.Logger, openai OpenAIClient) (ComicService, error) {
	if openai == nil {
		return nil, fmt.Errorf("openai client required")
	}
	slog := baseLog.With("service", "ComicService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("COMIC_FONT"))
	if fontPath != "" {
		f, err := loadComicFontFace(fontPath, dialogueFontSize)
		if err != nil {
			return nil, fmt.Errorf("could not load comic font: %w", err)
		}
		face = f
	} else {
		slog.Warn("COMIC_FONT not set, comics will be rendered without dialogue overlay")
	}

	return &comicService{
		log:      slog,
		openai:   openai,
		fontFace: face,
	}, nil
}

func (cs *comicService) Generate(ctx context.Context, diaryText string, gender string) (*types.ComicResult, error) {
	diaryText = strings.TrimSpace(diaryText)
	if diaryText == "" {
		return nil, fmt.Errorf("%w: diary text required", apperr.ErrInvalidInput)
	}
	gender = strings.ToLower(strings.TrimSpace(gender))
	if gender == "" {
		gender = GenderMale
	}
	character, ok := characterStyles[gender]
	if !ok {
		return nil, fmt.Errorf("%w: unknown gender %q", apperr.ErrInvalidInput, gender)
	}

	panels, err := cs.script(ctx, diaryText, character)
	if err != nil {
		return nil, fmt.Errorf("comic script: %w", err)
	}

	raw, err := cs.openai.GenerateImage(ctx, buildImagePrompt(panels, character), comicSize)
	if err != nil {
		return nil, fmt.Errorf("comic image: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		// some models return JPEG regardless of the request
		img, _, err = image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode comic image: %w", err)
		}
	}

	if cs.fontFace != nil {
		overlaid, err := cs.overlayDialogue(ctx, img, panels)
		if err != nil {
			cs.log.Warn("dialogue overlay failed, returning bare strip", "error", err)
		} else {
			img = overlaid
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode comic image: %w", err)
	}

	cs.log.Info("comic generated", "gender", gender, "bytes", buf.Len())
	return &types.ComicResult{ImagePNG: buf.Bytes(), Panels: panels}, nil
}

func (cs *comicService) script(ctx context.Context, diaryText string, character string) ([]types.ComicPanel, error) {
	prompt := fmt.Sprintf(`You are a Japanese comic writer INOUE TAKEHIKO.
Do not use speech bubbles.
First, translate the diary entry to fluent English if it's not already in English.
Then, generate a 4-panel wholesome slice-of-life comic scenario with a character described as: %s

Each panel must include a 'Scene' and a 'Dialogue' in the following format:

[Panel 1]
Scene: ...
Dialogue: ...

[Panel 2]
...

Diary: %s`, character, diaryText)

	out, err := cs.openai.ChatText(ctx, "", prompt, 0.7)
	if err != nil {
		return nil, err
	}
	return ParseComicScript(out)
}

// ParseComicScript extracts the four [Panel N] blocks from a model response.
func ParseComicScript(script string) ([]types.ComicPanel, error) {
	panels := make([]types.ComicPanel, 0, comicPanels)
	for i := 1; i <= comicPanels; i++ {
		startToken := fmt.Sprintf("[Panel %d]", i)
		idx := strings.Index(script, startToken)
		if idx < 0 {
			return nil, fmt.Errorf("%s not found in script", startToken)
		}
		part := script[idx+len(startToken):]
		if i < comicPanels {
			endToken := fmt.Sprintf("[Panel %d]", i+1)
			if end := strings.Index(part, endToken); end >= 0 {
				part = part[:end]
			}
		}

		var panel types.ComicPanel
		for _, line := range strings.Split(strings.TrimSpace(part), "\n") {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)
			switch {
			case strings.HasPrefix(lower, "scene:"):
				panel.Scene = strings.TrimSpace(line[len("scene:"):])
			case strings.HasPrefix(lower, "dialogue:"):
				panel.Dialogue = strings.TrimSpace(line[len("dialogue:"):])
			}
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

func buildImagePrompt(panels []types.ComicPanel, character string) string {
	var b strings.Builder
	b.WriteString(character)
	b.WriteString(" Create a 4-panel wholesome slice-of-life comic. Each panel is described below:\n")
	for i, p := range panels {
		fmt.Fprintf(&b, "[Panel %d] Scene: %s. Dialogue: %s\n", i+1, p.Scene, p.Dialogue)
	}
	b.WriteString("Draw all 4 panels in a single 1024x1024 image, arranged in 2x2 layout. " +
		"Do not include any text for image generation. Asian style art, and consistent Korean characters. " +
		"Avoid violence, sensitive topics, or anything that violates content policies.")
	return b.String()
}

// overlayDialogue paints a white caption box at the bottom of each panel and
// writes the Korean translation of its dialogue into it.
func (cs *comicService) overlayDialogue(ctx context.Context, img image.Image, panels []types.ComicPanel) (image.Image, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	panelW := float64(w) / 2
	panelH := float64(h) / 2
	boxH := panelH * boxHeightRatio

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(cs.fontFace)

	origins := [comicPanels][2]float64{
		{0, 0}, {panelW, 0},
		{0, panelH}, {panelW, panelH},
	}

	for i, origin := range origins {
		dialogue := panels[i].Dialogue
		if strings.TrimSpace(dialogue) == "" {
			continue
		}
		translated, err := cs.translateToKorean(ctx, dialogue)
		if err != nil {
			cs.log.Warn("dialogue translation failed, using original", "panel", i+1, "error", err)
			translated = dialogue
		}

		x, y := origin[0], origin[1]
		boxTop := y + panelH - boxH

		dc.SetRGB(1, 1, 1)
		dc.DrawRectangle(x, boxTop, panelW, boxH)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		textY := boxTop + dialoguePadding + dialogueFontSize*0.8
		for _, line := range wrapDialogue(translated, maxCharsPerLine, dialogueMaxLines) {
			dc.DrawString(line, x+dialoguePadding, textY)
			textY += dialogueFontSize + 8
		}
	}

	return dc.Image(), nil
}

func (cs *comicService) translateToKorean(ctx context.Context, text string) (string, error) {
	out, err := cs.openai.ChatText(ctx, "", fmt.Sprintf("Translate this into comics style natural Korean:\n%s", text), 0.5)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// wrapDialogue breaks text into rune-width lines, truncating with an
// ellipsis when it does not fit.
func wrapDialogue(text string, width int, maxLines int) []string {
	runes := []rune(strings.TrimSpace(text))
	lines := []string{}
	for len(runes) > 0 && len(lines) < maxLines {
		n := width
		if n > len(runes) {
			n = len(runes)
		}
		lines = append(lines, strings.TrimSpace(string(runes[:n])))
		runes = runes[n:]
	}
	if len(runes) > 0 && len(lines) > 0 {
		lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " ") + "..."
	}
	return lines
}

func loadComicFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		Hinting: font.HintingNone,
	}), nil
}
