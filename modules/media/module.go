// Package media renders images and web content.
package media

import (
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the image and web handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindImage, handleImage)
	r.RegisterFunc(renderop.KindNetworkImage, handleNetworkImage)
	r.RegisterFunc(renderop.KindCircleImage, handleCircleImage)
	r.RegisterFunc(renderop.KindWeb, handleWeb)
}

var contentModes = map[string]string{
	"aspectfill":  "crop",
	"aspectfit":   "fit",
	"center":      "none",
	"scaletofill": "fillBounds",
	"fill":        "fillBounds",
}

// ResourceName turns an image file name into a resource identifier:
// extension dropped, dashes replaced and lower-cased.
func ResourceName(src string) string {
	name := src
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".svg"} {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func handleImage(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	src, ok := v.String("src", "source")
	if !ok || src == "" {
		return fmt.Errorf("image needs a 'src'")
	}
	if attr.IsBinding(value.StringVal(src)) {
		op.Add("resource", renderop.ArgText, value.StringVal(src))
	} else {
		op.Add("resource", renderop.ArgText, value.StringVal(ResourceName(src)))
	}
	args.Text(op, v, "contentDescription", "contentDescription")
	if args.Enum(env, op, v, "contentScale", contentModes, "contentMode") {
		op.Need(renderop.ImportContentScale)
	}
	op.Need(renderop.ImportImage, renderop.ImportPainterResource)
	return nil
}

func handleNetworkImage(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.Text(op, v, "url", "url", "source", "src") {
		return fmt.Errorf("network image needs a 'url'")
	}
	remoteArgs(env, v, op)
	if args.Enum(env, op, v, "contentScale", contentModes, "contentMode") {
		op.Need(renderop.ImportContentScale)
	}
	return nil
}

func remoteArgs(env registry.Env, v attr.View, op *renderop.Op) {
	args.Text(op, v, "contentDescription", "contentDescription")
	if p, ok := v.String("placeholder"); ok {
		op.Add("placeholder", renderop.ArgText, value.StringVal(ResourceName(p)))
	}
	if e, ok := v.String("errorImage"); ok {
		op.Add("error", renderop.ArgText, value.StringVal(ResourceName(e)))
	}
	op.Need(renderop.ImportAsyncImage)
}

// A circle image is cropped to a circle and is remote when it has a url or
// an http source.
func handleCircleImage(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	source, _ := v.String("source", "src")
	if url, ok := v.String("url"); ok || isRemote(source) {
		if !ok {
			url = source
		}
		op.Add("url", renderop.ArgText, value.StringVal(url))
		remoteArgs(env, v, op)
	} else {
		if source == "" {
			source = "placeholder"
		}
		op.Add("resource", renderop.ArgText, value.StringVal(ResourceName(source)))
		args.TextOr(op, v, "contentDescription", "Profile Image", "contentDescription")
		op.Need(renderop.ImportImage, renderop.ImportPainterResource)
	}
	op.Add("contentScale", renderop.ArgEnum, value.StringVal("crop"))
	if !v.Has("size", "width", "height") {
		op.Add("diameter", renderop.ArgDp, value.NumberVal(48))
	}
	op.Need(renderop.ImportCircleShape, renderop.ImportContentScale)
	return nil
}

func handleWeb(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.Text(op, v, "url", "url", "src") {
		env.Report(renderop.Warning, fmt.Errorf("web view without a 'url' shows a blank page"))
		op.Add("url", renderop.ArgText, value.StringVal("about:blank"))
	}
	if !args.Bool(op, v, "javaScriptEnabled", "javaScriptEnabled") {
		op.Add("javaScriptEnabled", renderop.ArgBool, value.BoolVal(true))
	}
	args.Bool(op, v, "allowZoom", "allowZoom")
	args.Text(op, v, "userAgent", "userAgent")
	op.Need(renderop.ImportWebView)
	return nil
}
