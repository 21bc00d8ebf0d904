package mediakind

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

type Kind string

const (
	// KindNativeVideo файл, проигрываемый напрямую тегом video
	KindNativeVideo Kind = "native_video"
	// KindEmbed видео стороннего провайдера, требует iframe
	KindEmbed Kind = "embed"
	// KindImage запасной вариант: всё, что не распознано
	KindImage Kind = "image"
)

type Provider string

const (
	ProviderYouTube   Provider = "youtube"
	ProviderVimeo     Provider = "vimeo"
	ProviderInstagram Provider = "instagram"
)

// Preset параметры встраивания, выбираются вызывающей стороной
type Preset int

const (
	// PresetBackground автовоспроизведение без звука по кругу (фон карточки)
	PresetBackground Preset = iota
	// PresetPlayer воспроизведение по действию пользователя (лайтбокс)
	PresetPlayer
)

// Classification результат разбора URL медиа. Для KindEmbed заполнены
// Provider и VideoID; EmbedURL отдаёт готовую ссылку под пресет.
type Classification struct {
	Kind     Kind
	Provider Provider
	VideoID  string
	// для Instagram embed-ссылка не параметризуется пресетом
	fixedEmbedURL string
}

var nativeVideoExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".ogg":  {},
}

// Classify определяет отображаемый тип произвольного URL медиа.
// Чистая функция: без сети, без состояния, никогда не возвращает ошибку —
// всё неразобранное считается картинкой.
func Classify(rawURL string) Classification {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Classification{Kind: KindImage}
	}

	// расширение проверяется без query/fragment
	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := nativeVideoExts[ext]; ok {
		return Classification{Kind: KindNativeVideo}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	switch {
	case host == "youtu.be":
		if id := firstPathSegment(u.Path); id != "" {
			return Classification{Kind: KindEmbed, Provider: ProviderYouTube, VideoID: id}
		}
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if id := youtubeID(u); id != "" {
			return Classification{Kind: KindEmbed, Provider: ProviderYouTube, VideoID: id}
		}
	case host == "vimeo.com" || strings.HasSuffix(host, ".vimeo.com"):
		if id := vimeoID(u.Path); id != "" {
			return Classification{Kind: KindEmbed, Provider: ProviderVimeo, VideoID: id}
		}
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com"):
		if c, ok := instagramEmbed(u.Path); ok {
			return c
		}
	}

	return Classification{Kind: KindImage}
}

// EmbedURL возвращает iframe-ссылку для KindEmbed с параметрами под пресет;
// для остальных типов возвращает пустую строку
func (c Classification) EmbedURL(preset Preset) string {
	switch c.Provider {
	case ProviderYouTube:
		if preset == PresetBackground {
			return fmt.Sprintf(
				"https://www.youtube.com/embed/%s?autoplay=1&mute=1&loop=1&playlist=%s&controls=0",
				c.VideoID, c.VideoID,
			)
		}
		return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", c.VideoID)
	case ProviderVimeo:
		if preset == PresetBackground {
			return fmt.Sprintf("https://player.vimeo.com/video/%s?background=1&autoplay=1&loop=1&muted=1", c.VideoID)
		}
		return fmt.Sprintf("https://player.vimeo.com/video/%s?autoplay=1", c.VideoID)
	case ProviderInstagram:
		return c.fixedEmbedURL
	default:
		return ""
	}
}

func firstPathSegment(p string) string {
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

func youtubeID(u *url.URL) string {
	if id := u.Query().Get("v"); id != "" {
		return id
	}

	segs := splitPath(u.Path)
	if len(segs) >= 2 && (segs[0] == "embed" || segs[0] == "shorts") {
		return segs[1]
	}
	return ""
}

func vimeoID(p string) string {
	segs := splitPath(p)
	// id — последний полностью числовой сегмент пути
	for i := len(segs) - 1; i >= 0; i-- {
		if isDigits(segs[i]) {
			return segs[i]
		}
	}
	return ""
}

func instagramEmbed(p string) (Classification, bool) {
	segs := splitPath(p)
	if len(segs) < 2 {
		return Classification{}, false
	}
	switch segs[0] {
	case "p", "reel", "tv":
		return Classification{
			Kind:          KindEmbed,
			Provider:      ProviderInstagram,
			VideoID:       segs[1],
			fixedEmbedURL: fmt.Sprintf("https://www.instagram.com/%s/%s/embed", segs[0], segs[1]),
		}, true
	}
	return Classification{}, false
}

func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
