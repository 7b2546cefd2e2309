package filter

import (
	"net/url"
	"strings"

	"github.com/rsilveira/licoes/internal/domain"
)

// Query string keys, matching the shareable links the web client emits
const (
	paramCategory  = "categoria"
	paramPremium   = "premium"
	paramFavorites = "favoritos"
	paramSearch    = "busca"
)

// Encode renders the state as a query string: categoria as a slug,
// premium/favoritos as "true" or absent, busca as the raw term.
func Encode(s State) string {
	params := url.Values{}
	if s.Category != "" {
		params.Set(paramCategory, Slugify(string(s.Category)))
	}
	if s.PremiumOnly {
		params.Set(paramPremium, "true")
	}
	if s.FavoritesOnly {
		params.Set(paramFavorites, "true")
	}
	if term := trimTerm(s.Search); term != "" {
		params.Set(paramSearch, term)
	}
	return params.Encode()
}

// Decode reconstructs a state from a query string. The category slug is
// resolved against the kind's category set ignoring case, so names with
// lowercase connectives ("Desenhos para Colorir") survive the round trip;
// unknown categories decode as "all".
func Decode(query string, kind domain.Kind) State {
	params, err := url.ParseQuery(query)
	if err != nil {
		return State{}
	}

	s := State{
		PremiumOnly:   params.Get(paramPremium) == "true",
		FavoritesOnly: params.Get(paramFavorites) == "true",
		Search:        trimTerm(params.Get(paramSearch)),
	}

	if slug := params.Get(paramCategory); slug != "" && slug != "todas" {
		if cat, ok := domain.ParseCategory(Unslugify(slug), kind); ok {
			s.Category = cat
		}
	}

	return s
}

// Slugify lowercases a category name and replaces spaces with hyphens
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Unslugify converts a slug back to display form: hyphens become spaces
// and each word is capitalized ("datas-festivas" -> "Datas Festivas")
func Unslugify(slug string) string {
	words := strings.Split(strings.ToLower(slug), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func trimTerm(s string) string { return strings.TrimSpace(s) }
