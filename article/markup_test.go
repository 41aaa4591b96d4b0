package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "测试草稿 - photo.jpg", Title("photo.jpg"))
}

func TestBody(t *testing.T) {
	body := Body("photo.jpg", "http://mmbiz.example/content_1")
	assert.Contains(t, body, "使用图片 photo.jpg 创建的测试草稿内容")
	assert.Contains(t, body, "<img src='http://mmbiz.example/content_1' alt='内容图片'>")
	assert.Contains(t, body, "<p>这是图片之后的内容。</p>")
}

func TestFirstImage(t *testing.T) {
	body := Body("a.png", "http://mmbiz.example/x.png")

	src, alt, ok := FirstImage(body)
	if assert.True(t, ok) {
		assert.Equal(t, "http://mmbiz.example/x.png", src)
		assert.Equal(t, "内容图片", alt)
	}
}

func TestFirstImage_NoImage(t *testing.T) {
	_, _, ok := FirstImage("<p>纯文本段落</p>")
	assert.False(t, ok)
}

func TestFirstImage_TakesFirst(t *testing.T) {
	body := Body("a.png", "http://mmbiz.example/first") +
		Body("b.png", "http://mmbiz.example/second")

	src, _, ok := FirstImage(body)
	if assert.True(t, ok) {
		assert.Equal(t, "http://mmbiz.example/first", src)
	}
}
