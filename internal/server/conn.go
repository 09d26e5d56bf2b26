package server

import (
	"net"
	"time"

	"github.com/Brownie44l1/simplehttp/internal/logger"
	"github.com/Brownie44l1/simplehttp/internal/request"
	"github.com/Brownie44l1/simplehttp/internal/response"
	"github.com/Brownie44l1/simplehttp/internal/servlet"
)

// serveConn answers the single request on conn and closes it.
func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer s.release()
	defer s.untrack(conn)
	defer conn.Close()

	id := s.newID()
	log := s.logger.With(logger.F("request_id", id), logger.F("remote", conn.RemoteAddr().String()))

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := request.ReadRequest(conn, s.cfg.MaxHeaderBytes)

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}

	w := response.NewWriter(conn)
	w.SetDefault("X-Request-Id", id)

	if err != nil {
		log.Debug("bad request", logger.Err(err))
		if werr := w.ErrorResponse(response.StatusBadRequest, err.Error()); werr != nil {
			log.Debug("writing 400", logger.Err(werr))
		}
		return
	}

	if req.Method == "HEAD" {
		w.SetHeadOnly(true)
	}

	s.handler.ProcessRequest(servlet.NewContext(req, w, id))

	if w.HadError() {
		log.Warn("response incomplete", logger.F("path", req.Path), logger.F("sent", w.BodyBytes()))
	}
}
