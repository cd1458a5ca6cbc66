package island

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strconv"
)

// maxRecipeDepth guards against cyclic recipe data
const maxRecipeDepth = 32

// Item is a catalog entry; base items have both materials zero
type Item struct {
	Code          ItemCode `json:"code"`
	Name          string   `json:"name"`
	Stackable     int      `json:"stackable"`
	InitialCount  int      `json:"initialCount"`
	MakeMaterial1 ItemCode `json:"makeMaterial1"`
	MakeMaterial2 ItemCode `json:"makeMaterial2"`
}

// Base reports whether the item is gathered rather than crafted
func (it Item) Base() bool {
	return it.MakeMaterial1 == 0 && it.MakeMaterial2 == 0
}

// Catalog resolves item names and crafting trees
type Catalog struct {
	items map[ItemCode]Item
	names map[string]ItemCode
}

// NewCatalog indexes items; locale names take precedence over item names for lookups
func NewCatalog(items []Item, locale map[ItemCode]string) *Catalog {
	c := &Catalog{
		items: make(map[ItemCode]Item, len(items)),
		names: make(map[string]ItemCode, len(items)+len(locale)),
	}
	for _, it := range items {
		c.items[it.Code] = it
		if it.Name != "" {
			c.names[it.Name] = it.Code
		}
	}
	for code, name := range locale {
		c.names[name] = code
	}
	return c
}

// LoadItems decodes one or more item lists (armor, weapon, misc...) concatenated
func LoadItems(readers ...io.Reader) ([]Item, error) {
	var all []Item
	for i, r := range readers {
		var items []Item
		if err := json.NewDecoder(r).Decode(&items); err != nil {
			return nil, fmt.Errorf("decode item list %d: %w", i, err)
		}
		all = append(all, items...)
	}
	return all, nil
}

// LoadLocale decodes a locale document of the form {"items": {"<code>": "<name>"}}
func LoadLocale(r io.Reader) (map[ItemCode]string, error) {
	var doc struct {
		Items map[string]string `json:"items"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode locale: %w", err)
	}

	locale := make(map[ItemCode]string, len(doc.Items))
	for key, name := range doc.Items {
		code, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("locale item key %q: %w", key, err)
		}
		locale[ItemCode(code)] = name
	}
	return locale, nil
}

// Item returns the catalog entry for a code
func (c *Catalog) Item(code ItemCode) (Item, error) {
	it, ok := c.items[code]
	if !ok {
		return Item{}, &LookupNotFoundError{Table: "item", Key: strconv.FormatUint(uint64(code), 10)}
	}
	return it, nil
}

// FindByName returns the code of a named item
func (c *Catalog) FindByName(name string) (ItemCode, error) {
	code, ok := c.names[name]
	if !ok {
		return 0, &LookupNotFoundError{Table: "item name", Key: strconv.Quote(name)}
	}
	return code, nil
}

// Requirements resolves an item into the base items needed to craft it, with counts
func (c *Catalog) Requirements(code ItemCode) (map[ItemCode]int, error) {
	req := make(map[ItemCode]int)
	if err := c.resolve(code, req, 0); err != nil {
		return nil, err
	}
	return req, nil
}

func (c *Catalog) resolve(code ItemCode, req map[ItemCode]int, depth int) error {
	if depth > maxRecipeDepth {
		return fmt.Errorf("recipe for item %d exceeds depth %d", code, maxRecipeDepth)
	}
	it, err := c.Item(code)
	if err != nil {
		return err
	}
	if it.Base() {
		req[code]++
		return nil
	}
	for _, material := range [2]ItemCode{it.MakeMaterial1, it.MakeMaterial2} {
		if material == 0 {
			continue
		}
		if err := c.resolve(material, req, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Tally sums the base requirements of several targets, dropping excluded items
func (c *Catalog) Tally(targets []ItemCode, exclude ...ItemCode) (map[ItemCode]int, error) {
	total := make(map[ItemCode]int)
	for _, target := range targets {
		req, err := c.Requirements(target)
		if err != nil {
			return nil, fmt.Errorf("requirements of %d: %w", target, err)
		}
		for code, n := range req {
			total[code] += n
		}
	}
	for _, code := range exclude {
		delete(total, code)
	}
	return total, nil
}

// Names returns a copy of the name index
func (c *Catalog) Names() map[string]ItemCode {
	return maps.Clone(c.names)
}
