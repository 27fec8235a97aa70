package portfolio

import "time"

// Placeholder asset URLs used by the admin editor when appending a blank
// list item. The public page substitutes them until a real upload replaces
// them.
const (
	PlaceholderLogoURL    = "/placeholder.webp?height=50&width=50"
	PlaceholderProjectURL = "/placeholder.svg?height=300&width=500"
	PlaceholderWritingURL = "/placeholder.svg?height=200&width=350"
)

// DefaultData is the fixed dataset used to seed an entirely empty backing
// collection, so the public page never renders fully empty on first run.
// List sections start empty; scalar sections carry presentable filler.
func DefaultData() *Data {
	return &Data{
		Hero: &Hero{
			ProfileImageURL: nil,
			Name:            "John Doe",
			JobTitle:        "Full Stack Developer",
			Subtitle:        "Building modern and scalable web applications",
		},
		About: &About{
			Description: "I am a passionate developer with experience in building dynamic and responsive web applications. I enjoy creating solutions that combine functionality and design, built for performance and usability.",
		},
		Contact: &Contact{
			Title: "Get in Touch",
			Email: "contact@example.com",
			Phone: "+1 (123) 456-7890",
			Social: Social{
				LinkedIn: "https://linkedin.com/in/johndoe",
				GitHub:   "https://github.com/johndoe",
			},
		},
		Experience: []Experience{},
		Projects:   []Project{},
		Writing:    []Writing{},
		ResumeURL:  nil,
	}
}

// NewExperienceItem returns the default-initialized record appended by the
// editor's add-item operation for the experience section.
func NewExperienceItem() Experience {
	return Experience{
		LogoURL:      StrPtr(PlaceholderLogoURL),
		Technologies: []string{},
	}
}

func NewProjectItem() Project {
	return Project{
		ImageURL:     StrPtr(PlaceholderProjectURL),
		Technologies: []string{},
	}
}

func NewWritingItem() Writing {
	return Writing{
		Year:     time.Now().Year(),
		ImageURL: StrPtr(PlaceholderWritingURL),
	}
}
