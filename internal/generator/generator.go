// Package generator строит тексты по шаблонам для каждого типа контента и тональности.
// Генерация детерминирована и не обращается к внешним сервисам.
package generator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

const (
	// SocialMaxLength ограничение длины поста для соцсетей в символах.
	SocialMaxLength = 280
	// TitleWords количество слов запроса, из которых строится заголовок по умолчанию.
	TitleWords = 6
)

// Request входные данные генерации.
type Request struct {
	Title  string
	Prompt string
	Type   string
	Tone   string
}

// Result сгенерированный текст.
type Result struct {
	Title     string
	Body      string
	WordCount int
}

type voice struct {
	opening string
	closing string
	cta     string
}

var voices = map[string]voice{
	models.ToneNeutral: {
		opening: "Here is an overview of %s.",
		closing: "That covers the essentials.",
		cta:     "Learn more",
	},
	models.ToneFriendly: {
		opening: "Hey there! Let's talk about %s.",
		closing: "Hope this helps, and have a great day!",
		cta:     "Come say hi",
	},
	models.ToneFormal: {
		opening: "This document addresses %s.",
		closing: "We appreciate your attention to this matter.",
		cta:     "Request further information",
	},
	models.TonePersuasive: {
		opening: "Imagine what %s could do for you.",
		closing: "There has never been a better moment to act.",
		cta:     "Get started today",
	},
}

// Generator генератор контента по шаблонам.
type Generator struct{}

// New создаёт генератор.
func New() *Generator {
	return &Generator{}
}

// Generate возвращает заголовок, текст и количество слов.
// Пустая тональность трактуется как нейтральная, пустой заголовок строится из запроса.
func (g *Generator) Generate(req Request) Result {
	prompt := strings.Join(strings.Fields(req.Prompt), " ")
	v, ok := voices[req.Tone]
	if !ok {
		v = voices[models.ToneNeutral]
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = Title(prompt)
	}

	var body string
	switch req.Type {
	case models.ContentSocial:
		body = social(prompt, v)
	case models.ContentEmail:
		body = email(title, prompt, v)
	case models.ContentAd:
		body = ad(title, prompt, v)
	default:
		body = blog(title, prompt, v)
	}

	return Result{
		Title:     title,
		Body:      body,
		WordCount: WordCount(body),
	}
}

// Title строит заголовок из первых слов текста.
func Title(text string) string {
	words := strings.Fields(text)
	if len(words) > TitleWords {
		words = words[:TitleWords]
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// WordCount количество слов в тексте.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func blog(title, prompt string, v voice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, v.opening+"\n\n", prompt)
	b.WriteString("## Why it matters\n\n")
	fmt.Fprintf(&b, "Understanding %s helps you make better decisions and save time.\n\n", prompt)
	b.WriteString("## Key points\n\n")
	fmt.Fprintf(&b, "- Start with a clear goal for %s.\n", prompt)
	b.WriteString("- Measure the results and adjust.\n")
	b.WriteString("- Share what you learn with your audience.\n\n")
	b.WriteString(v.closing)
	return b.String()
}

func email(title, prompt string, v voice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n\n", title)
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, v.opening+"\n\n", prompt)
	fmt.Fprintf(&b, "We put together a few thoughts on %s that we think you will find useful.\n\n", prompt)
	b.WriteString(v.closing + "\n\n")
	b.WriteString("Best regards,\nThe Team")
	return b.String()
}

func ad(title, prompt string, v voice) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s ->", title, fmt.Sprintf(v.opening, prompt), v.cta)
}

func social(prompt string, v voice) string {
	tag := hashtag(prompt)
	text := fmt.Sprintf(v.opening, prompt) + " " + v.cta + "!"
	if tag != "" {
		text += " " + tag
	}
	return truncate(text, SocialMaxLength)
}

// hashtag склеивает первые слова запроса в тег, оставляя только буквы и цифры.
func hashtag(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > 3 {
		words = words[:3]
	}
	var b strings.Builder
	for _, w := range words {
		for _, r := range cases.Title(language.English).String(w) {
			if isAlnum(r) {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "#" + b.String()
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// truncate обрезает текст до max символов, добавляя многоточие.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
