package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/photovault/pkg/internal/handle"
)

// RegisterGalleryRoutes 注册图集与图片路由，访问控制在服务层逐操作校验.
func RegisterGalleryRoutes(g *gin.RouterGroup) {
	galleryRoutes := g.Group("/gallery")
	{
		collectionsGroup := galleryRoutes.Group("/collections")
		{
			collectionsGroup.GET("", handle.ListCollections)
			collectionsGroup.POST("", handle.CreateCollection)

			singleGroup := collectionsGroup.Group("/:id")
			{
				singleGroup.GET("", handle.GetCollection)
				singleGroup.PUT("", handle.UpdateCollection)
				singleGroup.DELETE("", handle.DeleteCollection)
				// 授权/回收访问
				singleGroup.POST("/access", handle.SetCollectionAccess)

				// 图集内图片
				singleGroup.GET("/images", handle.ListImages)
				singleGroup.POST("/images", handle.UploadImage)
				singleGroup.POST("/images/batch", handle.UploadImages)
			}
		}

		imagesGroup := galleryRoutes.Group("/images/:imageId")
		{
			imagesGroup.GET("", handle.GetImage)
			imagesGroup.DELETE("", handle.DeleteImage)
			// 带时效下载 URL
			imagesGroup.GET("/download", handle.GetImageDownloadURL)
		}
	}
}
