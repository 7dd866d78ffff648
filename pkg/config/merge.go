package config

// MergeConfig merges source into target and records sourceType for every
// value it applies. Zero values are skipped, except for keys listed in
// source.SetFields, which are applied even when zero.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}

	if source.Port != 0 || isSet(source, "port") {
		target.Port = source.Port
		target.mark("port", sourceType)
	}
	if source.ReadTimeout != 0 || isSet(source, "readTimeout") {
		target.ReadTimeout = source.ReadTimeout
		target.mark("readTimeout", sourceType)
	}
	if source.WriteTimeout != 0 || isSet(source, "writeTimeout") {
		target.WriteTimeout = source.WriteTimeout
		target.mark("writeTimeout", sourceType)
	}
	if source.DomainName != "" || isSet(source, "domainName") {
		target.DomainName = source.DomainName
		target.mark("domainName", sourceType)
	}
	if source.SelfURLScheme != "" {
		target.SelfURLScheme = source.SelfURLScheme
		target.mark("selfURLScheme", sourceType)
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.mark("logLevel", sourceType)
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.mark("logFormat", sourceType)
	}
	// A false boolean is only distinguishable from an absent one through
	// SetFields. Without it, only true is merged.
	if isSet(source, "metrics") || (source.SetFields == nil && source.Metrics) {
		target.Metrics = source.Metrics
		target.mark("metrics", sourceType)
	}
}

func isSet(cfg *Config, key string) bool {
	return cfg.SetFields[key]
}
