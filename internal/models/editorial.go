package models

// Pillar is a named content theme
type Pillar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Voice is a named tone profile
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tone string `json:"tone,omitempty"`
}

// EditorialDNA holds the pillars and voices slots refer to
type EditorialDNA struct {
	Pillars []Pillar `json:"pillars"`
	Voices  []Voice  `json:"voices"`
}

// Pillar looks up a pillar by id
func (d EditorialDNA) Pillar(id string) (Pillar, bool) {
	for _, p := range d.Pillars {
		if p.ID == id {
			return p, true
		}
	}
	return Pillar{}, false
}

// ContentPack is the pre-generated copy bundle attached to one asset
type ContentPack struct {
	AssetID  string   `json:"assetId"`
	CopyPT   string   `json:"copyPt"`
	CopyEN   string   `json:"copyEn"`
	Hashtags []string `json:"hashtags,omitempty"`
	CTA      string   `json:"cta,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}
