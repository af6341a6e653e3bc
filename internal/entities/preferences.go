package entities

// Preferences holds user-facing settings. They are persisted independently
// from the game snapshot, under their own storage key.
type Preferences struct {
	SoundEnabled    bool   `json:"sound_enabled"`
	Theme           string `json:"theme"`
	Language        string `json:"language"`
	TutorialEnabled bool   `json:"tutorial_enabled"`
}

// DefaultPreferences returns the first-run settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		SoundEnabled:    true,
		Theme:           "dark",
		Language:        "pt",
		TutorialEnabled: true,
	}
}
