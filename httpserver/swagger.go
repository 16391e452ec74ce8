package httpserver

import (
	_ "bechdel/docs"

	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Bechdel Test API
// @version v1
// @description Bechdel Test API using data from FiveThirtyEight.com
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
}
