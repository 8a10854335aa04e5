package tmdb

import (
	"net/url"
	"strings"
)

// Image size tags. The API labels every image record with a free-form size
// string; each variant kind recognizes its own closed set of tags and maps
// anything else to "original". Matching is case-insensitive.
type (
	PosterSize   string
	BackdropSize string
	ProfileSize  string
)

const (
	PosterSizeThumb    PosterSize = "thumb"
	PosterSizeMid      PosterSize = "mid"
	PosterSizeCover    PosterSize = "cover"
	PosterSizeOriginal PosterSize = "original"
)

const (
	BackdropSizeThumb    BackdropSize = "thumb"
	BackdropSizePoster   BackdropSize = "poster"
	BackdropSizeOriginal BackdropSize = "original"
)

const (
	ProfileSizeThumb    ProfileSize = "thumb"
	ProfileSizeProfile  ProfileSize = "profile"
	ProfileSizeOriginal ProfileSize = "original"
)

func posterSizeOf(tag string) PosterSize {
	switch strings.ToLower(tag) {
	case "thumb":
		return PosterSizeThumb
	case "mid":
		return PosterSizeMid
	case "cover":
		return PosterSizeCover
	default:
		return PosterSizeOriginal
	}
}

func backdropSizeOf(tag string) BackdropSize {
	switch strings.ToLower(tag) {
	case "thumb":
		return BackdropSizeThumb
	case "poster":
		return BackdropSizePoster
	default:
		return BackdropSizeOriginal
	}
}

func profileSizeOf(tag string) ProfileSize {
	switch strings.ToLower(tag) {
	case "thumb":
		return ProfileSizeThumb
	case "profile":
		return ProfileSizeProfile
	default:
		return ProfileSizeOriginal
	}
}

// A Poster is one poster image group: every size variant the API reported
// under the same image-group ID, merged into a single object.
type Poster struct {
	id    string
	sizes map[PosterSize]*url.URL
}

func newPoster(id string) *Poster {
	return &Poster{id: id, sizes: map[PosterSize]*url.URL{}}
}

// ID returns the service's opaque image-group ID. This is not the movie ID.
func (p *Poster) ID() string { return p.id }

// Image returns the URL for the given size, or nil if that size was never
// reported for this group.
func (p *Poster) Image(size PosterSize) *url.URL { return p.sizes[size] }

// SetImage records the URL for a size, replacing any earlier one.
func (p *Poster) SetImage(size PosterSize, u *url.URL) { p.sizes[size] = u }

// A Backdrop is one backdrop image group, merged across size variants.
type Backdrop struct {
	id    string
	sizes map[BackdropSize]*url.URL
}

func newBackdrop(id string) *Backdrop {
	return &Backdrop{id: id, sizes: map[BackdropSize]*url.URL{}}
}

func (b *Backdrop) ID() string                             { return b.id }
func (b *Backdrop) Image(size BackdropSize) *url.URL       { return b.sizes[size] }
func (b *Backdrop) SetImage(size BackdropSize, u *url.URL) { b.sizes[size] = u }

// A ProfileImage is one profile image group of a person.
type ProfileImage struct {
	id    string
	sizes map[ProfileSize]*url.URL
}

func newProfileImage(id string) *ProfileImage {
	return &ProfileImage{id: id, sizes: map[ProfileSize]*url.URL{}}
}

func (p *ProfileImage) ID() string                            { return p.id }
func (p *ProfileImage) Image(size ProfileSize) *url.URL       { return p.sizes[size] }
func (p *ProfileImage) SetImage(size ProfileSize, u *url.URL) { p.sizes[size] = u }

// MovieImages collects the poster and backdrop variants of one movie. The
// API reports each (size, URL) pair as its own record; records sharing an
// image-group ID merge into a single variant rather than duplicating. The
// registry is keyed by group ID for constant-time merging, with first-seen
// order preserved for iteration.
type MovieImages struct {
	posters     []*Poster
	postersByID map[string]*Poster

	backdrops     []*Backdrop
	backdropsByID map[string]*Backdrop
}

func NewMovieImages() *MovieImages {
	return &MovieImages{
		postersByID:   map[string]*Poster{},
		backdropsByID: map[string]*Backdrop{},
	}
}

// Posters returns the poster groups in first-seen order.
func (mi *MovieImages) Posters() []*Poster { return mi.posters }

// Backdrops returns the backdrop groups in first-seen order.
func (mi *MovieImages) Backdrops() []*Backdrop { return mi.backdrops }

// Poster returns the poster group with the given image-group ID, if any.
func (mi *MovieImages) Poster(id string) *Poster { return mi.postersByID[id] }

// Backdrop returns the backdrop group with the given image-group ID, if any.
func (mi *MovieImages) Backdrop(id string) *Backdrop { return mi.backdropsByID[id] }

func (mi *MovieImages) mergePoster(id string, size PosterSize, u *url.URL) *Poster {
	poster, ok := mi.postersByID[id]
	if !ok {
		poster = newPoster(id)
		mi.postersByID[id] = poster
		mi.posters = append(mi.posters, poster)
	}

	poster.SetImage(size, u)
	return poster
}

func (mi *MovieImages) mergeBackdrop(id string, size BackdropSize, u *url.URL) *Backdrop {
	backdrop, ok := mi.backdropsByID[id]
	if !ok {
		backdrop = newBackdrop(id)
		mi.backdropsByID[id] = backdrop
		mi.backdrops = append(mi.backdrops, backdrop)
	}

	backdrop.SetImage(size, u)
	return backdrop
}

// ProfileImages collects the profile image variants of one person, with the
// same merge-by-group-ID behavior as MovieImages.
type ProfileImages struct {
	profiles     []*ProfileImage
	profilesByID map[string]*ProfileImage
}

func NewProfileImages() *ProfileImages {
	return &ProfileImages{profilesByID: map[string]*ProfileImage{}}
}

func (pi *ProfileImages) Profiles() []*ProfileImage { return pi.profiles }

func (pi *ProfileImages) Profile(id string) *ProfileImage { return pi.profilesByID[id] }

func (pi *ProfileImages) mergeProfile(id string, size ProfileSize, u *url.URL) *ProfileImage {
	profile, ok := pi.profilesByID[id]
	if !ok {
		profile = newProfileImage(id)
		pi.profilesByID[id] = profile
		pi.profiles = append(pi.profiles, profile)
	}

	profile.SetImage(size, u)
	return profile
}
