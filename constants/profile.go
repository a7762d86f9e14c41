package constants

// Profile is a named canvas size preset for rendered artifacts.
type Profile string

// Stable values (used in artifact file names and job rows).
const (
	ProfileSocial Profile = "social" // square, feed posts
	ProfileA4     Profile = "a4"     // portrait, print
	ProfileCard   Profile = "card"   // tall portrait, stories
)

// Dimensions holds the raster pixel size of a profile.
type Dimensions struct {
	Width  int
	Height int
}

var profileDims = map[Profile]Dimensions{
	ProfileSocial: {Width: 1080, Height: 1080},
	ProfileA4:     {Width: 2480, Height: 3508},
	ProfileCard:   {Width: 1080, Height: 1920},
}

// ProfileDimensions returns the raster dimensions for a profile.
// The second return is false for unknown profiles.
func ProfileDimensions(p Profile) (Dimensions, bool) {
	d, ok := profileDims[p]
	return d, ok
}

// Profiles returns the supported profiles in a stable order.
func Profiles() []Profile {
	return []Profile{ProfileSocial, ProfileA4, ProfileCard}
}

// IsProfile reports whether p is a known profile.
func IsProfile(p Profile) bool {
	_, ok := profileDims[p]
	return ok
}

// SlideInches holds the logical slide size of a profile in inches.
type SlideInches struct {
	Width  float64
	Height float64
}

var profileSlides = map[Profile]SlideInches{
	ProfileSocial: {Width: 10, Height: 10},
	ProfileA4:     {Width: 8.27, Height: 11.69},
	ProfileCard:   {Width: 7.5, Height: 13.33},
}

// ProfileSlideSize returns the slide geometry for a profile.
func ProfileSlideSize(p Profile) (SlideInches, bool) {
	s, ok := profileSlides[p]
	return s, ok
}
