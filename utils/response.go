package utils

import "github.com/gin-gonic/gin"

// JSONData writes {"data": data}, with an optional user-facing message.
func JSONData(c *gin.Context, code int, data interface{}, message ...string) {
	body := gin.H{"data": data}
	if len(message) > 0 && message[0] != "" {
		body["message"] = message[0]
	}
	c.JSON(code, body)
}

// JSONPage writes a page of rows with its pagination block.
func JSONPage(c *gin.Context, code int, data interface{}, pagination interface{}) {
	c.JSON(code, gin.H{"data": data, "pagination": pagination})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// JSONError writes the error envelope; code mirrors the HTTP status.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message, "code": code})
}

// AbortJSONError is JSONError for middleware that must stop the chain.
func AbortJSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message, "code": code})
}
