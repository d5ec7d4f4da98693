package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/geekmd-io/geekmd/internal/extract"
	"github.com/geekmd-io/geekmd/internal/fetch"
	"github.com/geekmd-io/geekmd/internal/topics"
)

// Quick manual check of the extractor: pass a URL or a local HTML file and
// the rendered markdown plus block counts are printed to stdout.
func main() {
	src := topics.Default()[0].URL
	if len(os.Args) > 1 {
		src = os.Args[1]
	}

	var body []byte
	var err error
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := &fetch.Client{Timeout: 15 * time.Second, UserAgent: "debugextract/1.0"}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		body, _, err = client.Get(ctx, src)
	} else {
		body, err = os.ReadFile(src)
	}
	if err != nil {
		fmt.Println("err:", err)
		os.Exit(1)
	}

	doc, err := extract.Extractor{}.Format(body, src)
	if err != nil {
		fmt.Println("err:", err)
		os.Exit(1)
	}
	fmt.Print(doc.Render())
	s := doc.Stats()
	fmt.Printf("-- sections=%d articles=%d paragraphs=%d code=%d listitems=%d\n",
		s.Sections, s.Articles, s.Paragraphs, s.CodeBlocks, s.ListItems)
}
