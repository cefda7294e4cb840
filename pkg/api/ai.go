package api

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
	"tableflip.dev/palette/pkg/stats"
)

type aiHandler struct {
	svc *app.Service
}

func (h *aiHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-color", h.analyzeColor)
	rg.POST("/analyze-trends", h.analyzeTrends)
}

func (h *aiHandler) analyzeColor(c *gin.Context) {
	var req remote.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	out, err := AnalyzeColor(req)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, out)
}

func (h *aiHandler) analyzeTrends(c *gin.Context) {
	var req remote.TrendsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	p, err := stats.ParsePeriod(req.Period)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	a, err := h.svc.Analyze(c.Request.Context(), p)
	if err != nil {
		InternalError(c, err)
		return
	}
	OK(c, a)
}

type family struct {
	name     string
	maxHue   float64
	keywords []string
}

// families are checked in order; the first whose maxHue exceeds the hue wins.
var families = []family{
	{"red", 15, []string{"passion", "energy", "urgency"}},
	{"orange", 45, []string{"warmth", "enthusiasm", "play"}},
	{"yellow", 70, []string{"optimism", "attention", "lightness"}},
	{"green", 165, []string{"balance", "growth", "rest"}},
	{"cyan", 195, []string{"clarity", "calm", "openness"}},
	{"blue", 255, []string{"depth", "trust", "reflection"}},
	{"purple", 290, []string{"imagination", "mystery", "introspection"}},
	{"pink", 345, []string{"tenderness", "care", "affection"}},
	{"red", 361, []string{"passion", "energy", "urgency"}},
}

// AnalyzeColor reads a color by hue, saturation and lightness. It is a
// deterministic stand-in for a model-backed reading.
func AnalyzeColor(req remote.ColorRequest) (*remote.ColorAnalysis, error) {
	hex, err := entry.NormalizeColor(req.Color)
	if err != nil {
		return nil, entry.Invalid("color", err.Error())
	}
	if hex == "" {
		return nil, entry.Missing("color")
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, entry.Invalid("color", err.Error())
	}
	h, s, l := col.Hsl()

	out := &remote.ColorAnalysis{Color: hex}
	switch {
	case s < 0.12 && l > 0.9:
		out.Family = "white"
		out.Keywords = []string{"space", "quiet", "a fresh start"}
	case s < 0.12 && l < 0.12:
		out.Family = "black"
		out.Keywords = []string{"weight", "protection", "withdrawal"}
	case s < 0.12:
		out.Family = "gray"
		out.Keywords = []string{"neutrality", "fatigue", "pause"}
	default:
		for _, f := range families {
			if h < f.maxHue {
				out.Family = f.name
				out.Keywords = append([]string(nil), f.keywords...)
				break
			}
		}
	}

	switch {
	case l >= 0.75:
		out.Tone = "light"
	case l <= 0.3:
		out.Tone = "deep"
	case s >= 0.6:
		out.Tone = "vivid"
	default:
		out.Tone = "muted"
	}

	out.Complement = colorful.Hsl(math.Mod(h+180, 360), s, l).Clamped().Hex()
	out.Complement, _ = entry.NormalizeColor(out.Complement)
	out.Suggestions = suggestions(out.Tone, req.Intensity)
	if req.Emotion != "" {
		out.Keywords = append(out.Keywords, req.Emotion)
	}
	return out, nil
}

func suggestions(tone string, intensity int) []string {
	var out []string
	switch tone {
	case "deep":
		out = append(out, "Notice what is weighing on you and name it.")
	case "light":
		out = append(out, "Keep a little of today's ease for tomorrow.")
	case "vivid":
		out = append(out, "Put this energy into something you can finish today.")
	default:
		out = append(out, "Take a slow moment to check in with yourself.")
	}
	if intensity >= 4 {
		out = append(out, "Strong feelings pass; a short walk or a few deep breaths can help.")
	}
	return out
}
