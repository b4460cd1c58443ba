package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品类型
const (
	GoodsTypeCoin         = "coin"
	GoodsTypeContent      = "content"
	GoodsTypeSubscription = "subscription"
	GoodsTypePhysical     = "physical"
)

// Goods 商品目录行，订单创建只读取定价与类型
type Goods struct {
	ID         uint64          `gorm:"column:id;primaryKey" json:"id"`
	Name       string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	GoodsType  string          `gorm:"column:goods_type;type:varchar(20);not null" json:"goodsType"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`         // 现金单价
	CoinPrice  int64           `gorm:"column:coin_price;not null;default:0" json:"coinPrice"`         // 金币单价，<=0 表示不支持金币支付
	CoinAmount int64           `gorm:"column:coin_amount;not null;default:0" json:"coinAmount"`       // coin 类商品的到账金币数
	Status     int8            `gorm:"column:status;not null;default:1" json:"status"`                // 1=上架 0=下架
	CreateTime time.Time       `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime time.Time       `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Goods) TableName() string { return "t_goods" }
