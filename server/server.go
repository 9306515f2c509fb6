package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/konaseemakart/backend/handlers"
	"github.com/konaseemakart/backend/middlewares"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")

	router.HandleFunc("/restaurants", handlers.ListRestaurants).Methods("GET")
	router.HandleFunc("/add_restaurant", handlers.AddRestaurant).Methods("POST")
	router.HandleFunc("/remove_restaurant", handlers.RemoveRestaurant).Methods("POST")

	router.HandleFunc("/categories", handlers.ListCategories).Methods("GET")
	router.HandleFunc("/categories", handlers.CategoriesByRestaurant).Methods("POST")
	router.HandleFunc("/add_category", handlers.AddCategory).Methods("POST")
	router.HandleFunc("/remove_category", handlers.RemoveCategory).Methods("POST")

	router.HandleFunc("/get_dishes", handlers.GetDishes).Methods("POST")
	router.HandleFunc("/search_dish", handlers.SearchDish).Methods("POST")
	router.HandleFunc("/add_new_dish", handlers.AddDish).Methods("POST")
	router.HandleFunc("/remove_dish", handlers.RemoveDish).Methods("POST")
	router.HandleFunc("/add_dishimage", handlers.AddDishImage).Methods("POST")
	router.HandleFunc("/remove_dishimage", handlers.RemoveDishImage).Methods("POST")
	router.HandleFunc("/update_dishprice", handlers.UpdateDishPrice).Methods("POST")

	router.HandleFunc("/add_new_order", handlers.AddOrder).Methods("POST")
	router.HandleFunc("/get_orders_by_phone", handlers.OrdersByPhone).Methods("POST")
	router.HandleFunc("/get_orders_by_date", handlers.OrdersByDate).Methods("POST")
	router.HandleFunc("/update_order_status", handlers.UpdateOrderStatus).Methods("POST")

	router.HandleFunc("/send-otp", handlers.SendOTP).Methods("POST")
	router.HandleFunc("/verify-otp", handlers.VerifyOTP).Methods("POST")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	// CORS sits outside the router so preflight OPTIONS requests are
	// answered before method matching can 405 them.
	handler := middlewares.RequestLogger(middlewares.CORS(middlewares.LimitBody(svr.Router)))

	svr.server = &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
