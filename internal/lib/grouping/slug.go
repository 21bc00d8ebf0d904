package grouping

import "strings"

// UntaggedGroupID фиксированный id группы для элементов без тегов и
// запасной результат слагификации пустой строки. Не гарантированно
// не пересекается с легитимным тегом "untagged" — поведение источника
// сохранено осознанно.
const UntaggedGroupID = "untagged"

// Slugify приводит строку к url-безопасному виду: нижний регистр, серии
// не-алфанумерики схлопываются в один дефис, крайние дефисы обрезаются
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // подавляет ведущий дефис

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return UntaggedGroupID
	}
	return out
}
