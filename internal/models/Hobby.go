package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Hobby struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Members int    `json:"members"`
}

// HobbyCatalog is the fixed, ordered list of hobbies shown on the page.
type HobbyCatalog struct {
	hobbies []Hobby
	bySlug  map[string]int
}

func NewHobbyCatalog(hobbies []Hobby) *HobbyCatalog {
	c := &HobbyCatalog{
		hobbies: make([]Hobby, len(hobbies)),
		bySlug:  make(map[string]int, len(hobbies)),
	}
	copy(c.hobbies, hobbies)
	for i, h := range c.hobbies {
		c.bySlug[h.Slug] = i
	}
	return c
}

func (c *HobbyCatalog) All() []Hobby {
	out := make([]Hobby, len(c.hobbies))
	copy(out, c.hobbies)
	return out
}

func (c *HobbyCatalog) Find(slug string) (Hobby, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Hobby{}, false
	}
	return c.hobbies[i], true
}

func (c *HobbyCatalog) TotalMembers() int {
	total := 0
	for _, h := range c.hobbies {
		total += h.Members
	}
	return total
}

// Share returns the hobby's share of all members in percent, rounded to
// one decimal place.
func (c *HobbyCatalog) Share(h Hobby) float64 {
	total := c.TotalMembers()
	if total == 0 {
		return 0
	}
	return math.Round(float64(h.Members)/float64(total)*1000) / 10
}

// AdjustColor shifts every channel of a #rrggbb color by amount, clamped
// to 0..255. Invalid input is returned unchanged.
func AdjustColor(color string, amount int) string {
	num, err := strconv.ParseUint(strings.TrimPrefix(color, "#"), 16, 32)
	if err != nil {
		return color
	}
	clamp := func(v int) int { return min(max(v, 0), 255) }
	r := clamp(int(num>>16) + amount)
	g := clamp(int((num>>8)&0xFF) + amount)
	b := clamp(int(num&0xFF) + amount)
	return fmt.Sprintf("#%06x", r<<16|g<<8|b)
}
