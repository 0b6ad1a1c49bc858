// Package youtube derives thumbnail and embed URLs for YouTube-hosted videos.
//
// Nothing here returns an error. URLs that do not look like YouTube links
// degrade to a placeholder image or are passed through untouched.
package youtube

import (
	"fmt"
	"regexp"

	"github.com/bilgisen/lawgate/internal/models"
)

const (
	thumbnailBase = "https://img.youtube.com/vi"
	embedBase     = "https://www.youtube-nocookie.com/embed"
	embedParams   = "autoplay=1&rel=0&modestbranding=1"
)

// Quality is one of the fixed thumbnail renditions served by img.youtube.com
type Quality string

const (
	MaxRes   Quality = "maxresdefault"
	High     Quality = "hqdefault"
	Medium   Quality = "mqdefault"
	Standard Quality = "sddefault"
)

// VideoPlaceholder is shown when no video id can be extracted
const VideoPlaceholder = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="1280" height="720"%3E%3Crect fill="%23000" width="1280" height="720"/%3E%3Ctext fill="%23fff" font-family="sans-serif" font-size="48" x="50%25" y="50%25" text-anchor="middle" dy=".3em"%3EVideo%3C/text%3E%3C/svg%3E`

// NoImagePlaceholder terminates the fallback chain once every rendition failed
const NoImagePlaceholder = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="400" height="225"%3E%3Crect fill="%23f3f4f6" width="400" height="225"/%3E%3Ctext fill="%236b7280" font-family="sans-serif" font-size="24" x="50%25" y="50%25" text-anchor="middle" dy=".3em"%3ENo Image%3C/text%3E%3C/svg%3E`

// Tried in order, first match wins
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s?]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\s]+)`),
}

// fallbackChain lists the renditions tried after the primary fails, best first.
// maxresdefault is left out on purpose: YouTube answers a missing maxres
// image with a blank 200 instead of a 404.
var fallbackChain = []Quality{Medium, Standard}

// ExtractVideoID returns the video id of a watch, short-link or embed URL
func ExtractVideoID(url string) (string, bool) {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// ThumbnailURL returns the image URL of a single rendition, or
// VideoPlaceholder when url is not a YouTube link.
func ThumbnailURL(url string, quality Quality) string {
	id, ok := ExtractVideoID(url)
	if !ok {
		return VideoPlaceholder
	}
	if quality == "" {
		quality = High
	}
	return imageURL(id, quality)
}

// ResolveThumbnail returns the hqdefault image as primary followed by
// lower-quality fallbacks. Unresolvable URLs yield VideoPlaceholder and
// no fallbacks.
func ResolveThumbnail(url string) models.Thumbnail {
	id, ok := ExtractVideoID(url)
	if !ok {
		return models.Thumbnail{Primary: VideoPlaceholder, Fallbacks: []string{}}
	}

	fallbacks := make([]string, 0, len(fallbackChain))
	for _, q := range fallbackChain {
		fallbacks = append(fallbacks, imageURL(id, q))
	}
	return models.Thumbnail{
		Primary:   imageURL(id, High),
		Fallbacks: fallbacks,
	}
}

// AdvanceOnLoadFailure returns the image to show after attempt failed
// loads of url's thumbnail. Once attempt reaches the number of fallbacks
// the result is always NoImagePlaceholder.
func AdvanceOnLoadFailure(attempt int, url string) string {
	fallbacks := ResolveThumbnail(url).Fallbacks
	if attempt < 0 || attempt >= len(fallbacks) {
		return NoImagePlaceholder
	}
	return fallbacks[attempt]
}

// BuildEmbedURL returns the privacy-enhanced player URL for url. Links that
// are not recognised are returned unchanged.
func BuildEmbedURL(url string) string {
	id, ok := ExtractVideoID(url)
	if !ok {
		return url
	}
	return fmt.Sprintf("%s/%s?%s", embedBase, id, embedParams)
}

func imageURL(id string, quality Quality) string {
	return fmt.Sprintf("%s/%s/%s.jpg", thumbnailBase, id, quality)
}
