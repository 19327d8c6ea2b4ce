package view

import (
	"net/url"
	"strings"
)

const (
	DefaultLocalImagePrefix = "/static/images/products/"
	DefaultImageProxyPath   = "/api/image-proxy"
	DefaultPlaceholder      = "https://via.placeholder.com/80"
	DefaultSubItemHolder    = "https://via.placeholder.com/120"

	thumbnailSuffix = "_220x220q75.jpg"
)

var (
	cdnHosts        = []string{"alicdn.com", "aliexpress-media.com"}
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".avif"}
)

// Image is the outcome of resolving a raw product image reference.
type Image struct {
	Src         string `json:"src"`
	Original    string `json:"original"`
	Placeholder bool   `json:"placeholder"`
}

// ImageResolver decides which URL the browser should request for a product image.
// It never touches the network.
type ImageResolver struct {
	LocalPrefix        string
	ProxyPath          string
	Placeholder        string
	SubItemPlaceholder string
}

func DefaultImageResolver() ImageResolver {
	return ImageResolver{
		LocalPrefix:        DefaultLocalImagePrefix,
		ProxyPath:          DefaultImageProxyPath,
		Placeholder:        DefaultPlaceholder,
		SubItemPlaceholder: DefaultSubItemHolder,
	}
}

// Resolve maps an order image:
//   - local static images are used as they are,
//   - CDN images go through the proxy, plain ".jpg" names rewritten to the thumbnail form,
//   - anything else needs a known image extension or becomes the placeholder.
func (r ImageResolver) Resolve(raw, productID string) Image {
	img := Image{Original: raw}

	switch {
	case raw == "":
		img.Src, img.Placeholder = r.Placeholder, true
	case strings.HasPrefix(raw, r.LocalPrefix):
		img.Src = raw
	case isCDN(raw):
		target := raw
		if strings.HasSuffix(raw, ".jpg") && !strings.Contains(raw, "_") {
			target = strings.TrimSuffix(raw, ".jpg") + thumbnailSuffix
		}
		img.Src = r.proxy(target, productID)
	case hasImageExtension(raw):
		img.Src = raw
	default:
		img.Src, img.Placeholder = r.Placeholder, true
	}
	return img
}

// ResolveSubItem is the looser rule used for the items of a multi-item order:
// no thumbnail rewrite, and any absolute http URL is accepted.
func (r ImageResolver) ResolveSubItem(raw, productID string) Image {
	img := Image{Original: raw}

	switch {
	case raw == "":
		img.Src, img.Placeholder = r.SubItemPlaceholder, true
	case strings.HasPrefix(raw, r.LocalPrefix):
		img.Src = raw
	case isCDN(raw):
		img.Src = r.proxy(raw, productID)
	case !strings.HasPrefix(raw, "http") && !strings.HasPrefix(raw, "/static"):
		img.Src, img.Placeholder = r.SubItemPlaceholder, true
	default:
		img.Src = raw
	}
	return img
}

func (r ImageResolver) proxy(target, productID string) string {
	var b strings.Builder
	b.WriteString(r.ProxyPath)
	b.WriteString("?url=")
	b.WriteString(url.QueryEscape(target))
	if productID != "" {
		b.WriteString("&product_id=")
		b.WriteString(url.QueryEscape(productID))
	}
	return b.String()
}

func isCDN(raw string) bool {
	for _, host := range cdnHosts {
		if strings.Contains(raw, host) {
			return true
		}
	}
	return false
}

func hasImageExtension(raw string) bool {
	for _, ext := range imageExtensions {
		if strings.Contains(raw, ext) {
			return true
		}
	}
	return false
}
