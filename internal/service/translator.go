package service

// Translator localizes authored display strings (bracket messages,
// recommended-item titles). Localization itself lives in an external system;
// the engine only hands keys and fallbacks through.
type Translator interface {
	Translate(locale, key, fallback string) string
}

type passthroughTranslator struct{}

// NewPassthroughTranslator returns a translator that always yields the
// fallback text. Deployments wire the real translation collaborator instead.
func NewPassthroughTranslator() Translator {
	return &passthroughTranslator{}
}

func (passthroughTranslator) Translate(_, _, fallback string) string {
	return fallback
}
