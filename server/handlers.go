package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/render"
	"github.com/user/setlist-archive-cli/view"
)

// NowPlaying is the body of /api/now-playing and of click responses.
type NowPlaying struct {
	Playing  bool              `json:"playing"`
	VideoID  string            `json:"videoId,omitempty"`
	EntryID  string            `json:"entryId,omitempty"`
	Title    string            `json:"title,omitempty"`
	Start    float64           `json:"start,omitempty"`
	Position float64           `json:"position,omitempty"`
	Route    string            `json:"route"`
	States   map[string]string `json:"states,omitempty"`
}

type pageData struct {
	Query   string
	Message string
	Playing string
	SVG     template.HTML
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// page renders the HTML page after applying the request's route:
// ?q= filters, ?clear=1 clears, ?date= or ?song= navigate. Without any of
// them the current view is kept, or the default card shown on first load.
func (s *Server) page(c *gin.Context) {
	if err := s.navigate(c); err != nil {
		s.fail(c, err)
		return
	}
	snap, err := s.session.Snapshot()
	if err != nil {
		s.fail(c, err)
		return
	}

	var svg strings.Builder
	if err := render.WriteSVG(&svg, snap.Page, snap.Scene); err != nil {
		s.fail(c, err)
		return
	}
	data := pageData{
		Query: snap.Query,
		SVG:   template.HTML(svg.String()),
	}
	if snap.Filter != nil {
		data.Message = snap.Filter.Message
	}
	if snap.Playing != nil {
		data.Playing = snap.Playing.DisplayTitle()
	}
	c.HTML(http.StatusOK, "page", data)
}

func (s *Server) navigate(c *gin.Context) error {
	q, hasQuery := c.GetQuery("q")
	route := archive.ParseRoute(c.Request.URL.Query())
	switch {
	case c.Query("clear") != "":
		return s.session.ClearFilter()
	case hasQuery:
		return s.session.ApplyFilter(q)
	case route != archive.Route{}:
		return s.session.Navigate(route)
	}

	snap, err := s.session.Snapshot()
	if err != nil {
		return err
	}
	if snap.ActiveDate == "" && !snap.Filtering() {
		return s.session.Navigate(archive.Route{})
	}
	return nil
}

func (s *Server) scene(c *gin.Context) {
	snap, err := s.session.Snapshot()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := render.WriteSVG(c.Writer, snap.Page, snap.Scene); err != nil {
		s.log.Warn("write scene", "error", err)
	}
}

func (s *Server) autocomplete(c *gin.Context) {
	suggestions := s.session.Autocomplete(c.Query("q"))
	if suggestions == nil {
		suggestions = []archive.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) nowPlaying(c *gin.Context) {
	np, err := s.currentlyPlaying()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, np)
}

func (s *Server) click(c *gin.Context) {
	if err := s.session.ClickEntry(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.nowPlaying(c)
}

// clickRedirect serves the plain links inside the SVG: it clicks and sends
// the browser back to the page.
func (s *Server) clickRedirect(c *gin.Context) {
	if err := s.session.ClickEntry(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	snap, err := s.session.Snapshot()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/"+snap.Route.String())
}

func (s *Server) hover(c *gin.Context) {
	if err := s.session.HoverEntry(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) leave(c *gin.Context) {
	if err := s.session.LeaveEntry(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) currentlyPlaying() (NowPlaying, error) {
	snap, err := s.session.Snapshot()
	if err != nil {
		return NowPlaying{}, err
	}
	np := NowPlaying{Route: snap.Route.String()}
	if len(snap.States) > 0 {
		np.States = make(map[string]string, len(snap.States))
		for id, st := range snap.States {
			np.States[id] = st.String()
		}
	}
	if e := snap.Playing; e != nil {
		np.Playing = true
		np.VideoID = snap.PlayingVideo
		np.EntryID = e.ID
		np.Title = e.DisplayTitle()
		np.Start = e.Start
		np.Position = snap.Position
	}
	return np, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, view.ErrUnknownEntry), errors.Is(err, archive.ErrUnknownDate):
		status = http.StatusNotFound
	case errors.Is(err, view.ErrStopped):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": fmt.Sprint(err)})
}
