package tracemap

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/presentation"
	"github.com/theoremus-urban-solutions/tracemap/session"
)

// maxEventBytes caps an interaction event body.
const maxEventBytes = 1 << 16

func (s *Server) lookup(r *http.Request) (*session.Session, error) {
	id, err := parseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(id)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.sessions.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		writeError(w, &RequestError{Msg: "failed to read event: " + err.Error()})
		return
	}
	ev, err := session.DecodeEvent(body)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Apply(ev); err != nil {
		writeError(w, err)
		return
	}
	s.log.Debug("event applied", zap.String("session", sess.ID().String()), zap.String("type", ev.Type))
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation.BuildLayers(sess.Dataset(), sess.Snapshot()))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation.BuildTimeline(sess.Dataset(), sess.Snapshot()))
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation.BuildTooltip(sess.Dataset(), sess.Snapshot()))
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	fc := presentation.FeatureCollection(sess.Dataset(), sess.Snapshot())
	data, err := fc.MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}
