package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes; modules.AuthModule and friends implement it.
type Module interface {
	Register(rg *gin.RouterGroup)
}
