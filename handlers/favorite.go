package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"estatefind/config"
	"estatefind/models"
	"estatefind/utils"
)

type FavoriteController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
}

func NewFavoriteController() *FavoriteController {
	collectionName := config.GetEnv("MONGODB_COLLECTION_FAVORITES", "favorites")
	propertyCollectionName := config.GetEnv("MONGODB_COLLECTION_PROPERTIES", "properties")
	return &FavoriteController{
		collection:         config.GetCollection(collectionName),
		propertyCollection: config.GetCollection(propertyCollectionName),
	}
}

// ToggleFavorite flips the user's membership for one property and returns
// the resulting state. The response is what clients must display; their
// prior local guess may already be stale.
func (fc *FavoriteController) ToggleFavorite(c echo.Context) error {
	var req models.ToggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and propertyId are required"})
	}
	if !utils.IsValidPropertyID(req.PropertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	selector := bson.M{"userId": req.UserID, "propertyId": req.PropertyID}

	count, err := fc.collection.CountDocuments(ctx, selector)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check favorite"})
	}

	if count > 0 {
		if _, err := fc.collection.DeleteMany(ctx, selector); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove favorite"})
		}
		return c.JSON(http.StatusOK, models.ToggleFavoriteResponse{Success: true, IsFavorite: false})
	}

	favorite := models.Favorite{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		CreatedAt:  time.Now(),
	}
	if _, err := fc.collection.InsertOne(ctx, favorite); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to favorite property"})
	}
	return c.JSON(http.StatusOK, models.ToggleFavoriteResponse{Success: true, IsFavorite: true})
}

// GetFavorites returns the property records of the user's favorite set.
func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "User ID is required"})
	}

	ctx := c.Request().Context()
	cursor, err := fc.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorites"})
	}
	defer cursor.Close(ctx)

	var propertyIDs []string
	for cursor.Next(ctx) {
		var favorite models.Favorite
		if err := cursor.Decode(&favorite); err != nil {
			continue
		}
		propertyIDs = append(propertyIDs, favorite.PropertyID)
	}

	properties := []models.Property{}
	if len(propertyIDs) > 0 {
		propCursor, err := fc.propertyCollection.Find(ctx, bson.M{"_id": bson.M{"$in": propertyIDs}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorite properties"})
		}
		defer propCursor.Close(ctx)
		for propCursor.Next(ctx) {
			var property models.Property
			if err := propCursor.Decode(&property); err != nil {
				continue
			}
			properties = append(properties, property)
		}
	}

	return c.JSON(http.StatusOK, models.PropertyListResponse{Success: true, Data: properties})
}
