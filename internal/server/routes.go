package server

import (
	"net/http"
	"time"

	"github.com/peddamat/tplink2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type sensorValueResponse struct {
	Id    string   `json:"id"`
	Name  string   `json:"name"`
	Unit  string   `json:"unit,omitempty"`
	Value *float64 `json:"value"`
}

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/sensors", s.SensorValuesHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) SensorValuesHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetSensorValuesRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "sensors: FAIL")
	}
	response, ok := res.(domain.GetSensorValuesResponse)
	if !ok || response.HasResponseError() {
		return c.String(http.StatusServiceUnavailable, "sensors: FAIL")
	}
	values := make([]sensorValueResponse, 0, len(response.Values))
	for _, value := range response.Values {
		values = append(values, sensorValueResponse{
			Id:    value.Id,
			Name:  value.Name,
			Unit:  value.Unit,
			Value: value.Value,
		})
	}
	return c.JSON(http.StatusOK, values)
}
