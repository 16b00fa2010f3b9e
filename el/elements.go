package el

import "github.com/quartzui/quartz/pkg/vdom"

// Document structure

func Div(args ...any) *vdom.VNode     { return vdom.H("div", args...) }
func Span(args ...any) *vdom.VNode    { return vdom.H("span", args...) }
func Main(args ...any) *vdom.VNode    { return vdom.H("main", args...) }
func Section(args ...any) *vdom.VNode { return vdom.H("section", args...) }
func Article(args ...any) *vdom.VNode { return vdom.H("article", args...) }
func Header(args ...any) *vdom.VNode  { return vdom.H("header", args...) }
func Footer(args ...any) *vdom.VNode  { return vdom.H("footer", args...) }
func Nav(args ...any) *vdom.VNode     { return vdom.H("nav", args...) }
func Aside(args ...any) *vdom.VNode   { return vdom.H("aside", args...) }

// Text content

func H1(args ...any) *vdom.VNode         { return vdom.H("h1", args...) }
func H2(args ...any) *vdom.VNode         { return vdom.H("h2", args...) }
func H3(args ...any) *vdom.VNode         { return vdom.H("h3", args...) }
func H4(args ...any) *vdom.VNode         { return vdom.H("h4", args...) }
func H5(args ...any) *vdom.VNode         { return vdom.H("h5", args...) }
func H6(args ...any) *vdom.VNode         { return vdom.H("h6", args...) }
func P(args ...any) *vdom.VNode          { return vdom.H("p", args...) }
func Pre(args ...any) *vdom.VNode        { return vdom.H("pre", args...) }
func Code(args ...any) *vdom.VNode       { return vdom.H("code", args...) }
func Blockquote(args ...any) *vdom.VNode { return vdom.H("blockquote", args...) }
func Strong(args ...any) *vdom.VNode     { return vdom.H("strong", args...) }
func Em(args ...any) *vdom.VNode         { return vdom.H("em", args...) }
func Small(args ...any) *vdom.VNode      { return vdom.H("small", args...) }
func Br(args ...any) *vdom.VNode         { return vdom.H("br", args...) }
func Hr(args ...any) *vdom.VNode         { return vdom.H("hr", args...) }

// Lists

func Ul(args ...any) *vdom.VNode { return vdom.H("ul", args...) }
func Ol(args ...any) *vdom.VNode { return vdom.H("ol", args...) }
func Li(args ...any) *vdom.VNode { return vdom.H("li", args...) }
func Dl(args ...any) *vdom.VNode { return vdom.H("dl", args...) }
func Dt(args ...any) *vdom.VNode { return vdom.H("dt", args...) }
func Dd(args ...any) *vdom.VNode { return vdom.H("dd", args...) }

// Tables

func Table(args ...any) *vdom.VNode { return vdom.H("table", args...) }
func Thead(args ...any) *vdom.VNode { return vdom.H("thead", args...) }
func Tbody(args ...any) *vdom.VNode { return vdom.H("tbody", args...) }
func Tfoot(args ...any) *vdom.VNode { return vdom.H("tfoot", args...) }
func Tr(args ...any) *vdom.VNode    { return vdom.H("tr", args...) }
func Th(args ...any) *vdom.VNode    { return vdom.H("th", args...) }
func Td(args ...any) *vdom.VNode    { return vdom.H("td", args...) }

// Forms

func Form(args ...any) *vdom.VNode     { return vdom.H("form", args...) }
func Input(args ...any) *vdom.VNode    { return vdom.H("input", args...) }
func Textarea(args ...any) *vdom.VNode { return vdom.H("textarea", args...) }
func Select(args ...any) *vdom.VNode   { return vdom.H("select", args...) }
func Option(args ...any) *vdom.VNode   { return vdom.H("option", args...) }
func Label(args ...any) *vdom.VNode    { return vdom.H("label", args...) }
func Button(args ...any) *vdom.VNode   { return vdom.H("button", args...) }
func Fieldset(args ...any) *vdom.VNode { return vdom.H("fieldset", args...) }
func Legend(args ...any) *vdom.VNode   { return vdom.H("legend", args...) }

// Media and links

func A(args ...any) *vdom.VNode      { return vdom.H("a", args...) }
func Img(args ...any) *vdom.VNode    { return vdom.H("img", args...) }
func Figure(args ...any) *vdom.VNode { return vdom.H("figure", args...) }
func Canvas(args ...any) *vdom.VNode { return vdom.H("canvas", args...) }
