// Package prompt turns a style fragment and an optional user subject
// into a single image-generation prompt via a text-generation call.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const defaultSubject = "a captivating scene"

// noFrameClause is appended to every crafting instruction: the artwork
// fills a television edge to edge, so rendered frames are never wanted.
const noFrameClause = "The image must be edge-to-edge artwork only. Never render a picture frame, border, mat, canvas edge or gallery wall around it."

const tealAccentClause = "Weave deliberate accents of teal, cyan and aqua into the composition so they read as an intentional part of the palette."

var minimalistPattern = regexp.MustCompile(`(?i)minimal|simple|clean`)

// GenerationConfig tunes the text-generation call per template.
type GenerationConfig struct {
	Temperature     float64
	MaxOutputTokens int
}

// TextGenerator is the crafting call. Implemented by gemini.Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// ErrNoCandidate means the crafting call returned no usable text.
// The caller must not proceed to image synthesis.
var ErrNoCandidate = errors.New("prompt crafting returned no text candidate")

type Crafter struct {
	generator TextGenerator
}

func NewCrafter(generator TextGenerator) *Crafter {
	return &Crafter{generator: generator}
}

// Craft produces one natural-language image prompt for the given style
// fragment and optional subject.
func (c *Crafter) Craft(ctx context.Context, styleFragment, subject string, tealAccent bool) (string, error) {
	instruction, cfg := BuildInstruction(styleFragment, subject, tealAccent)

	text, err := c.generator.GenerateText(ctx, instruction, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to craft prompt: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoCandidate
	}
	return text, nil
}

// BuildInstruction selects the crafting template for a style. Styles
// whose text reads minimalist get a restrained, low-temperature
// template; everything else gets the fuller cinematic one.
func BuildInstruction(styleFragment, subject string, tealAccent bool) (string, GenerationConfig) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = defaultSubject
	}

	var b strings.Builder
	var cfg GenerationConfig

	if minimalistPattern.MatchString(styleFragment) {
		cfg = GenerationConfig{Temperature: 0.4, MaxOutputTokens: 220}
		fmt.Fprintf(&b, "Write one short, restrained image-generation prompt for artwork in this style: %s.\n", styleFragment)
		fmt.Fprintf(&b, "Subject: %s.\n", subject)
		b.WriteString("Keep the description spare. Emphasise negative space, few elements, and quiet composition. No ornament, no clutter, no lists.\n")
	} else {
		cfg = GenerationConfig{Temperature: 0.9, MaxOutputTokens: 480}
		fmt.Fprintf(&b, "Write one vivid image-generation prompt for a piece of artwork in this style: %s.\n", styleFragment)
		fmt.Fprintf(&b, "Subject: %s.\n", subject)
		b.WriteString("Give full art direction: composition, light, palette, mood, texture and focal point, as a cinematographer would brief it. One flowing paragraph, no lists.\n")
	}

	if tealAccent {
		b.WriteString(tealAccentClause)
		b.WriteString("\n")
	}
	b.WriteString(noFrameClause)
	b.WriteString("\nReturn only the prompt text.")

	return b.String(), cfg
}
