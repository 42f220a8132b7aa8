package model

// Profile maps non-sensitive field types to the values the user wants
// filled. An absent or empty value means "no value provided". Sensitive
// field types are never stored here.
type Profile map[FieldType]string

// DefaultProfile returns a profile with every known (non-sensitive) field
// type present and empty. Stores return this when no profile has been saved.
func DefaultProfile() Profile {
	p := make(Profile, len(ProfileFieldTypes))
	for _, ft := range ProfileFieldTypes {
		p[ft] = ""
	}
	return p
}

// ValueFor returns the proposed value for a field type, or "" when the
// profile has none (including for sensitive and unknown types).
func (p Profile) ValueFor(ft FieldType) string {
	if p == nil {
		return ""
	}
	return p[ft]
}

// Merge returns a copy of the defaults overlaid with the values in p,
// so a partially-saved profile still exposes every known key.
func (p Profile) Merge() Profile {
	out := DefaultProfile()
	for ft, v := range p {
		out[ft] = v
	}
	return out
}

// Settings are the two user-facing safety switches.
//
// HardBlockSensitive is the last line of defense and defaults on. Note that
// turning it off still never enables a sensitive fill: the decision engine's
// fill branch excludes sensitive types unconditionally. The flag only
// controls whether sensitive fields report "blocked" or a generic "skip".
type Settings struct {
	HardBlockSensitive bool `json:"hard_block_sensitive"`
	SkipUnknown        bool `json:"skip_unknown"`
}

// DefaultSettings returns the documented defaults: both switches on.
func DefaultSettings() Settings {
	return Settings{
		HardBlockSensitive: true,
		SkipUnknown:        true,
	}
}
