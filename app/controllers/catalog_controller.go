package controllers

import (
	"github.com/shashiranjanraj/restopos/app/resources"
	"github.com/shashiranjanraj/restopos/app/services"
	"github.com/shashiranjanraj/restopos/pkg/ctx"
	"github.com/shashiranjanraj/restopos/pkg/resource"
)

// CategoryController serves /api/categories.
type CategoryController struct {
	catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{catalog: catalog}
}

func (cc *CategoryController) Index(c *ctx.Context) {
	cats, err := cc.catalog.ListCategories(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Collection(cats, resources.Category))
}

func (cc *CategoryController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	cat, err := cc.catalog.GetCategory(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*cat, resources.Category))
}

func (cc *CategoryController) Store(c *ctx.Context) {
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	cat, err := cc.catalog.CreateCategory(c.Context(), c.Actor(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(*cat, resources.Category))
}

func (cc *CategoryController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !c.BindJSON(&in) {
		return
	}
	cat, err := cc.catalog.UpdateCategory(c.Context(), c.Actor(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*cat, resources.Category))
}

func (cc *CategoryController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := cc.catalog.DeleteCategory(c.Context(), c.Actor(), id); err != nil {
		fail(c, err)
		return
	}
	c.Message("Category deleted")
}

// MenuController serves /api/menus.
type MenuController struct {
	catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{catalog: catalog}
}

func (mc *MenuController) Index(c *ctx.Context) {
	menus, err := mc.catalog.ListMenus(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Collection(menus, resources.Menu))
}

func (mc *MenuController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	m, err := mc.catalog.GetMenu(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*m, resources.Menu))
}

func (mc *MenuController) Store(c *ctx.Context) {
	var in services.MenuInput
	if !c.BindJSON(&in) {
		return
	}
	m, err := mc.catalog.CreateMenu(c.Context(), c.Actor(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(*m, resources.Menu))
}

func (mc *MenuController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var in services.MenuInput
	if !c.BindJSON(&in) {
		return
	}
	m, err := mc.catalog.UpdateMenu(c.Context(), c.Actor(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(*m, resources.Menu))
}

func (mc *MenuController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := mc.catalog.DeleteMenu(c.Context(), c.Actor(), id); err != nil {
		fail(c, err)
		return
	}
	c.Message("Menu deleted")
}
