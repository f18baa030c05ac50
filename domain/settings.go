package domain

// Presentation settings are captured at generation time and stored on the
// production. They never retroactively change already-synthesized media.

const (
	AspectLandscape   = "16:9"
	AspectPortrait    = "9:16"
	AspectSquare      = "1:1"
	AspectClassic     = "4:3"
	AspectPortraitAlt = "3:4"
)

const (
	TransitionCinematic = "Cinematic Blur"
	TransitionZoomWarp  = "Zoom Warp"
	TransitionSlide     = "Horizontal Slide"
	TransitionDissolve  = "Classic Dissolve"
)

// Voice labels embed descriptive text after the voice identity. The speech
// adapter derives the remote voice identifier from the first token.
const (
	VoiceKore   = "Kore (Female, Soothing)"
	VoicePuck   = "Puck (Male, Energetic)"
	VoiceCharon = "Charon (Male, Deep)"
	VoiceFenrir = "Fenrir (Male, Intense)"
	VoiceZephyr = "Zephyr (Female, Calm)"
)

const (
	CaptionBottom = "Bottom Overlay"
	CaptionCenter = "Centered"
	CaptionTop    = "Top Overlay"
	CaptionBelow  = "Below Image (Cinematic)"
)

const (
	FontSmall      = "Small"
	FontMedium     = "Medium"
	FontLarge      = "Large"
	FontExtraLarge = "Extra Large"
)

const (
	WritingViral       = "Viral & Clickbaity"
	WritingIntense     = "Intense Thriller"
	WritingFairyTale   = "Whimsical Fairy Tale"
	WritingNoir        = "Dark Noir"
	WritingEducational = "Educational & Clear"
	WritingComedic     = "Witty & Comedic"
)

const (
	ArtCinematic   = "Cinematic Realistic"
	ArtAnime       = "Anime/Manga"
	ArtWatercolor  = "Watercolor"
	ArtCyberpunk   = "Cyberpunk Neon"
	ArtPixel       = "Pixel Art"
	ArtOilPainting = "Classic Oil Painting"
	ArtThreeD      = "3D Pixar Style"
)

var (
	AspectRatios = []string{AspectLandscape, AspectPortrait, AspectSquare, AspectClassic, AspectPortraitAlt}

	TransitionStyles = []string{TransitionCinematic, TransitionZoomWarp, TransitionSlide, TransitionDissolve}

	Voices = []string{VoiceKore, VoicePuck, VoiceCharon, VoiceFenrir, VoiceZephyr}

	CaptionPositions = []string{CaptionBottom, CaptionCenter, CaptionTop, CaptionBelow}

	FontSizes = []string{FontSmall, FontMedium, FontLarge, FontExtraLarge}

	WritingStyles = []string{WritingViral, WritingIntense, WritingFairyTale, WritingNoir, WritingEducational, WritingComedic}

	ArtStyles = []string{ArtCinematic, ArtAnime, ArtWatercolor, ArtCyberpunk, ArtPixel, ArtOilPainting, ArtThreeD}
)

// StyleKeywords are prompt-enhancement fragments per art style, surfaced to
// the editor through the options catalog.
var StyleKeywords = map[string][]string{
	ArtCinematic:   {"4k", "highly detailed", "dramatic lighting", "shallow depth of field", "bokeh", "anamorphic lens", "color graded", "photorealistic", "ray tracing"},
	ArtAnime:       {"studio ghibli style", "vibrant colors", "cel shaded", "clean lines", "anime key visual", "detailed background", "soft lighting", "kawaii", "expressive"},
	ArtWatercolor:  {"soft edges", "pastel colors", "ink bleed", "wet on wet", "artistic", "textured paper", "dreamy", "ethereal", "brush strokes"},
	ArtCyberpunk:   {"neon lights", "fog", "high tech", "futuristic", "cybernetics", "rain slicked streets", "glowing accents", "night city", "dystopian"},
	ArtPixel:       {"16-bit", "retro", "dithering", "pixelated", "sprite art", "isometric", "vibrant", "arcade style", "blocky"},
	ArtOilPainting: {"impasto", "canvas texture", "classic art", "visible brushstrokes", "renaissance lighting", "rich colors", "masterpiece", "oil on canvas"},
	ArtThreeD:      {"pixar style", "octane render", "unreal engine 5", "volumetric lighting", "3d cartoon", "smooth textures", "ambient occlusion", "character design"},
}
