package logging

// Standard attribute keys.
const (
	FieldComponent    = "component"
	FieldEventType    = "event_type"
	FieldErrorHint    = "error_hint"
	FieldImpact       = "impact"
	FieldDecisionType = "decision_type"
	FieldSeries       = "series"
	FieldEpisode      = "episode"
	FieldLanguage     = "language"
	FieldPath         = "path"
)
