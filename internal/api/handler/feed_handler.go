package handler

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/internal/pkg/config"
)

type FeedHandler struct {
	postService ports.PostService
	site        config.SiteConfig
}

func NewFeedHandler(postService ports.PostService, site config.SiteConfig) *FeedHandler {
	return &FeedHandler{postService: postService, site: site}
}

const feedItemLimit = 50

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	AtomLink    atomLink  `xml:"atom:link"`
	Items       []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description,omitempty"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
}

// RSS serves the blog as an RSS 2.0 feed of the newest published posts.
//
// @Summary      RSS feed
// @Tags         public
// @Produce      application/rss+xml
// @Success      200  {string}  string
// @Router       /rss [get]
func (h *FeedHandler) RSS(c echo.Context) error {
	posts, err := h.postService.RecentPublished(c.Request().Context(), feedItemLimit)
	if err != nil {
		return err
	}

	feed := rssFeed{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       h.site.Title,
			Link:        h.site.URL,
			Description: h.site.Description,
			AtomLink: atomLink{
				Href: h.site.URL + "/rss",
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}

	for _, post := range posts {
		link := h.site.URL + "/blog/" + post.Slug
		pubDate := post.CreatedAt
		if post.PublishedAt != nil {
			pubDate = *post.PublishedAt
		}
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			Description: post.Excerpt,
			Author:      post.AuthorName,
			PubDate:     pubDate.Format(time.RFC1123Z),
		})
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), out...))
}
