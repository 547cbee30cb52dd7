package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	courseUsecases "studia/internal/application/course/usecases"
	"studia/internal/shared/id"
	"studia/internal/shared/logger"
	"studia/internal/shared/utils"
)

type CourseHandler struct {
	createUC  *courseUsecases.CreateCourseUseCase
	updateUC  *courseUsecases.UpdateCourseUseCase
	publishUC *courseUsecases.PublishCourseUseCase
	getUC     *courseUsecases.GetCourseUseCase
	searchUC  *courseUsecases.SearchCoursesUseCase
	listMyUC  *courseUsecases.ListMyCoursesUseCase
	deleteUC  *courseUsecases.DeleteCourseUseCase
	logger    logger.Interface
}

func NewCourseHandler(
	createUC *courseUsecases.CreateCourseUseCase,
	updateUC *courseUsecases.UpdateCourseUseCase,
	publishUC *courseUsecases.PublishCourseUseCase,
	getUC *courseUsecases.GetCourseUseCase,
	searchUC *courseUsecases.SearchCoursesUseCase,
	listMyUC *courseUsecases.ListMyCoursesUseCase,
	deleteUC *courseUsecases.DeleteCourseUseCase,
	logger logger.Interface,
) *CourseHandler {
	return &CourseHandler{
		createUC:  createUC,
		updateUC:  updateUC,
		publishUC: publishUC,
		getUC:     getUC,
		searchUC:  searchUC,
		listMyUC:  listMyUC,
		deleteUC:  deleteUC,
		logger:    logger,
	}
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=1"`
	Currency    string `json:"currency"`
	VideoURL    string `json:"video_url"`
	PDFURL      string `json:"pdf_url"`
}

type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=1"`
	VideoURL    string `json:"video_url"`
	PDFURL      string `json:"pdf_url"`
}

// @Summary		Create course
// @Description	Create a draft course owned by the caller
// @Tags			courses
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			course	body		CreateCourseRequest	true	"Course data"
// @Success		201		{object}	utils.APIResponse	"Course created"
// @Failure		400		{object}	utils.APIResponse	"Bad request"
// @Failure		401		{object}	utils.APIResponse	"Unauthorized"
// @Router			/courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	view, err := h.createUC.Execute(c.Request.Context(), courseUsecases.CreateCourseCommand{
		AuthorID:    userID.(uint),
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		VideoURL:    req.VideoURL,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, view, "course created successfully")
}

// @Summary		Update course
// @Description	Edit a course owned by the caller
// @Tags			courses
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			id		path		string				true	"Course ID"
// @Param			course	body		UpdateCourseRequest	true	"Course data"
// @Success		200		{object}	utils.APIResponse	"Course updated"
// @Failure		400		{object}	utils.APIResponse	"Bad request"
// @Failure		403		{object}	utils.APIResponse	"Not the author"
// @Failure		404		{object}	utils.APIResponse	"Course not found"
// @Router			/courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	courseSID, err := utils.ParseSIDParam(c, "id", id.PrefixCourse, "course")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	view, err := h.updateUC.Execute(c.Request.Context(), courseUsecases.UpdateCourseCommand{
		UserID:      userID.(uint),
		CourseSID:   courseSID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		VideoURL:    req.VideoURL,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course updated successfully", view)
}

// @Summary		Publish course
// @Description	Make a course visible in the catalog
// @Tags			courses
// @Produce		json
// @Security		Bearer
// @Param			id	path		string				true	"Course ID"
// @Success		200	{object}	utils.APIResponse	"Course published"
// @Failure		400	{object}	utils.APIResponse	"Course is not sellable"
// @Failure		403	{object}	utils.APIResponse	"Not the author"
// @Router			/courses/{id}/publish [post]
func (h *CourseHandler) Publish(c *gin.Context) {
	h.setPublished(c, true, "course published successfully")
}

// @Summary		Unpublish course
// @Description	Remove a course from the catalog
// @Tags			courses
// @Produce		json
// @Security		Bearer
// @Param			id	path		string				true	"Course ID"
// @Success		200	{object}	utils.APIResponse	"Course unpublished"
// @Failure		403	{object}	utils.APIResponse	"Not the author"
// @Router			/courses/{id}/unpublish [post]
func (h *CourseHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false, "course unpublished successfully")
}

func (h *CourseHandler) setPublished(c *gin.Context, publish bool, message string) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	courseSID, err := utils.ParseSIDParam(c, "id", id.PrefixCourse, "course")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.publishUC.Execute(c.Request.Context(), courseUsecases.PublishCourseCommand{
		UserID:    userID.(uint),
		CourseSID: courseSID,
		Publish:   publish,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, nil)
}

// @Summary		Get course
// @Description	Return a course. Asset URLs appear only for the author and entitled buyers.
// @Tags			courses
// @Produce		json
// @Param			id	path		string				true	"Course ID"
// @Success		200	{object}	utils.APIResponse	"Course"
// @Failure		404	{object}	utils.APIResponse	"Course not found"
// @Router			/courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	courseSID, err := utils.ParseSIDParam(c, "id", id.PrefixCourse, "course")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Anonymous callers get the public view.
	var viewerID uint
	if userID, exists := c.Get("user_id"); exists {
		viewerID = userID.(uint)
	}

	view, err := h.getUC.Execute(c.Request.Context(), courseUsecases.GetCourseCommand{
		CourseSID: courseSID,
		UserID:    viewerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course retrieved successfully", view)
}

// @Summary		Search courses
// @Description	List published courses, boosted ones first
// @Tags			courses
// @Produce		json
// @Param			q			query		string	false	"Search query"
// @Param			max_price	query		int		false	"Maximum price in cents"
// @Param			page		query		int		false	"Page number"
// @Param			page_size	query		int		false	"Page size"
// @Param			sort_by		query		string	false	"Sort field"
// @Param			sort_desc	query		bool	false	"Sort descending"
// @Success		200			{object}	utils.APIResponse	"Courses"
// @Router			/courses [get]
func (h *CourseHandler) Search(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	var maxPrice *int64
	if raw := c.Query("max_price"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid max_price")
			return
		}
		maxPrice = &parsed
	}

	result, err := h.searchUC.Execute(c.Request.Context(), courseUsecases.SearchCoursesCommand{
		Query:    c.Query("q"),
		MaxPrice: maxPrice,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		SortBy:   c.Query("sort_by"),
		SortDesc: c.Query("sort_desc") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Courses, result.Total, result.Page, result.PageSize)
}

// @Summary		List my courses
// @Description	List the caller's courses, drafts included
// @Tags			courses
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"Courses"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/courses/mine [get]
func (h *CourseHandler) ListMine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	views, err := h.listMyUC.Execute(c.Request.Context(), courseUsecases.ListMyCoursesCommand{UserID: userID.(uint)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "courses retrieved successfully", views)
}

// @Summary		Delete course
// @Description	Delete a course owned by the caller
// @Tags			courses
// @Produce		json
// @Security		Bearer
// @Param			id	path		string				true	"Course ID"
// @Success		200	{object}	utils.APIResponse	"Course deleted"
// @Failure		403	{object}	utils.APIResponse	"Not the author"
// @Failure		404	{object}	utils.APIResponse	"Course not found"
// @Router			/courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	courseSID, err := utils.ParseSIDParam(c, "id", id.PrefixCourse, "course")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.deleteUC.Execute(c.Request.Context(), courseUsecases.DeleteCourseCommand{
		UserID:    userID.(uint),
		CourseSID: courseSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course deleted successfully", nil)
}
