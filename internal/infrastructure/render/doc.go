// Package render turns assembled report documents into downloadable
// files. One renderer per export format. The PDF format has two engines:
// gofpdf draws the document directly and needs no external binary, while
// the chromedp engine prints the HTML rendition through headless Chrome
// for nicer typography on machines that have it.
package render
