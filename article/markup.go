package article

// This file contains the composition of the generated test drafts: the
// title, byline, and HTML body built around a single uploaded image.

import (
	"fmt"

	"github.com/alexflint/go-restructure"
)

// Byline defaults for generated drafts
const (
	DefaultAuthor = "测试作者"
	DefaultDigest = "这是一段摘要"
)

// Title returns the draft title for an image file
func Title(filename string) string {
	return fmt.Sprintf("测试草稿 - %s", filename)
}

// Body returns the HTML body for a draft built around one content
// image. The URL must be one served by the content-image upload
// endpoint; the platform strips foreign image hosts from article
// bodies.
func Body(filename, imageURL string) string {
	return fmt.Sprintf(
		"<p>这是一篇使用图片 %s 创建的测试草稿内容。</p>"+
			"<p>内容中的图片:</p>"+
			"<img src='%s' alt='内容图片'>"+
			"<p>这是图片之后的内容。</p>",
		filename, imageURL)
}

// a regular expression for the <img> tags that Body generates
type imageTag struct {
	_   string `<img src='`
	Src string `[^']*`
	_   string `' alt='`
	Alt string `[^']*`
	_   string `'>`
}

var imageTagPattern = restructure.MustCompile(&imageTag{}, restructure.Options{})

// FirstImage extracts the source URL and alt text of the first <img>
// tag in an article body. It reports false when the body embeds no
// image.
func FirstImage(body string) (src, alt string, ok bool) {
	var tag imageTag
	if !imageTagPattern.Find(&tag, body) {
		return "", "", false
	}
	return tag.Src, tag.Alt, true
}
