package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"estatefind/config"
	"estatefind/engine"
	"estatefind/models"
	"estatefind/utils"
)

const listingsCacheTTL = 60 * time.Second

type PropertyController struct {
	collection *mongo.Collection
}

func NewPropertyController() *PropertyController {
	collectionName := config.GetEnv("MONGODB_COLLECTION_PROPERTIES", "properties")
	return &PropertyController{
		collection: config.GetCollection(collectionName),
	}
}

// criteriaFromQuery maps the request's query params onto engine criteria.
// Unknown or absent params stay at their sentinels.
func criteriaFromQuery(c echo.Context) engine.Criteria {
	criteria := engine.DefaultCriteria()
	criteria.Query = c.QueryParam("q")
	if t := c.QueryParam("type"); t != "" {
		criteria.Type = t
	}
	if city := c.QueryParam("city"); city != "" {
		criteria.City = city
	}
	if v := c.QueryParam("min_bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			criteria.MinBedrooms = n
		}
	}
	if v := c.QueryParam("min_bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			criteria.MinBathrooms = n
		}
	}
	switch engine.SizeBucket(c.QueryParam("size")) {
	case engine.SizeUnder:
		criteria.Size = engine.SizeUnder
	case engine.SizeAbove:
		criteria.Size = engine.SizeAbove
	}
	return criteria
}

// fetchActive loads the active listing collection in a deterministic order
// so pagination stays meaningful between requests.
func (pc *PropertyController) fetchActive(ctx context.Context) ([]models.Property, error) {
	cursor, err := pc.collection.Find(ctx, bson.M{"status": models.StatusActive})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return engine.Sort(properties, engine.SortUpdatedDesc), nil
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	cacheKey := utils.ListingsCacheKey("properties", params)

	var cached models.PropertyListResponse
	if hit, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.fetchActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}

	view := engine.Compose(properties, criteriaFromQuery(c), engine.ParseSortKey(c.QueryParam("sort")))

	page := 1
	limit := 20
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	resp := models.PropertyListResponse{
		Success: true,
		Data:    engine.Paginate(view, page, limit),
	}
	_ = utils.SetCached(ctx, cacheKey, resp, listingsCacheTTL)
	return c.JSON(http.StatusOK, resp)
}

func (pc *PropertyController) SearchProperties(c echo.Context) error {
	ctx := c.Request().Context()

	properties, err := pc.fetchActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to search properties"})
	}

	criteria := engine.DefaultCriteria()
	criteria.Query = c.QueryParam("q")

	return c.JSON(http.StatusOK, models.PropertyListResponse{
		Success: true,
		Data:    engine.Filter(properties, criteria),
	})
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidPropertyID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	var property models.Property
	err := pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, models.PropertyResponse{Success: true, Data: property})
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if !utils.IsValidPropertyID(property.ID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	count, err := pc.collection.CountDocuments(ctx, bson.M{"_id": property.ID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property existence"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Property with this ID already exists"})
	}

	if property.Status == "" {
		property.Status = models.StatusActive
	}
	property.CreatedBy = &userID
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()
	if _, err := pc.collection.InsertOne(ctx, property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}
	return c.JSON(http.StatusCreated, models.PropertyResponse{Success: true, Data: property})
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	id := c.Param("id")
	if !utils.IsValidPropertyID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	var property models.Property
	err := pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if !canModify(property, userID, userRole) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var update models.Property
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	updateDoc := bson.M{
		"title":     update.Title,
		"price":     update.Price,
		"type":      update.Type,
		"city":      update.City,
		"state":     update.State,
		"bedrooms":  update.Bedrooms,
		"bathrooms": update.Bathrooms,
		"sqft":      update.Sqft,
		"sqftUnit":  update.SqftUnit,
		"images":    update.Images,
		"status":    update.Status,
		"agent":     update.Agent,
		"updatedAt": time.Now(),
	}
	if _, err := pc.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	if err := pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}
	return c.JSON(http.StatusOK, models.PropertyResponse{Success: true, Data: property})
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	userID := c.Get("user_id").(primitive.ObjectID)
	userRole := c.Get("user_role").(string)
	id := c.Param("id")
	if !utils.IsValidPropertyID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	var property models.Property
	err := pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if !canModify(property, userID, userRole) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}
	if _, err := pc.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": "Property deleted successfully"})
}

func canModify(property models.Property, userID primitive.ObjectID, role string) bool {
	if role == "admin" {
		return true
	}
	return property.CreatedBy != nil && *property.CreatedBy == userID
}
