package http

import (
	"github.com/labstack/echo/v4"
)

func v1Endpoint(
	websocket *Websocket,
	RegistrationHandler *RegistrationHandler,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/registration",
				routes: []*route{
					{"POST", "/validate", RegistrationHandler.HandleValidate, nil},
					{"POST", "/fields/:field", RegistrationHandler.HandleValidateField, nil},
					{"GET", "/live", websocket.WithHeartbeat(RegistrationHandler.HandleLive), nil},
				},
			},
		},
	}
}
