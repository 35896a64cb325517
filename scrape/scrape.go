// Package scrape downloads the gpx files linked from a web page.
package scrape

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links returns the absolute URLs of every link on the page ending in .gpx, in page
// order and without repeats.
func Links(client *http.Client, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", pageURL, err)
	}

	logf("Scraping %q for gpx links\n", pageURL)

	resp, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("getting %q: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting %q: %s", pageURL, resp.Status)
	}

	dom, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pageURL, err)
	}
	var links []string
	seen := map[string]bool{}
	dom.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			debugf("skipping link %q: %v\n", href, err)
			return
		}
		if !strings.EqualFold(path.Ext(ref.Path), ".gpx") {
			return
		}
		abs := base.ResolveReference(ref)
		abs.Fragment = ""
		if seen[abs.String()] {
			return
		}
		seen[abs.String()] = true
		links = append(links, abs.String())
	})
	return links, nil
}

// Fetch downloads every gpx file linked from the page into dir, named after the last
// element of the link path. Existing files are never overwritten. It returns the paths
// written.
func Fetch(client *http.Client, pageURL, dir string) ([]string, error) {
	links, err := Links(client, pageURL)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, link := range links {
		fpath, err := download(client, link, dir)
		if err != nil {
			return written, err
		}
		written = append(written, fpath)
	}
	return written, nil
}

func download(client *http.Client, link, dir string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", link, err)
	}
	name, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		name = path.Base(u.Path)
	}
	fpath := filepath.Join(dir, filepath.Base(name))

	logf("Downloading %q to %q\n", link, fpath)

	resp, err := client.Get(link)
	if err != nil {
		return "", fmt.Errorf("getting %q: %w", link, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("getting %q: %s", link, resp.Status)
	}

	file, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", fpath, err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %q: %w", fpath, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %q: %w", fpath, err)
	}
	return fpath, nil
}
